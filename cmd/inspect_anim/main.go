// inspect_anim prints the contents of animation documents and can check that
// the scene's assets satisfy the names the loading scene looks up.
//
//	go run ./cmd/inspect_anim assets/scene/walk_cycles.anim
//	go run ./cmd/inspect_anim -check
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/bearscene/internal/anim"
	"github.com/decker502/bearscene/pkg/config"
	"github.com/decker502/bearscene/pkg/game"
)

func main() {
	check := flag.Bool("check", false, "check the scene contract of the configured documents")
	configPath := flag.String("config", "", "scene configuration file (defaults to the built-in one)")
	root := flag.String("root", ".", "directory document paths are relative to")
	flag.Parse()

	if !*check && flag.NArg() == 0 {
		fmt.Println("Usage: go run ./cmd/inspect_anim [-check] [-config scene.yaml] [-root dir] <file.anim>...")
		os.Exit(1)
	}

	failed := false
	for _, path := range flag.Args() {
		if err := inspect(os.Stdout, path); err != nil {
			log.Printf("%s: %v", path, err)
			failed = true
		}
	}

	if *check {
		cfg := config.DefaultSceneConfig()
		if *configPath != "" {
			var err error
			if cfg, err = config.LoadSceneConfig(*configPath); err != nil {
				log.Fatalf("Failed to load config: %v", err)
			}
		}
		if err := checkContract(context.Background(), os.Stdout, game.FSFetcher(os.DirFS(*root)), cfg); err != nil {
			log.Printf("Contract check failed: %v", err)
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

// inspect decodes one document file and prints its artboards.
func inspect(w io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	x, err := anim.ParseDocument(data)
	if err != nil {
		return err
	}
	rt := anim.NewRuntime()
	doc, err := rt.Load(data)
	if err != nil {
		return err
	}
	defer doc.Release()

	fmt.Fprintf(w, "Document: %s (version %d)\n", path, x.Version)
	for _, name := range doc.ArtboardNames() {
		def, _ := doc.Definition(name)
		printArtboard(w, def)
	}
	return nil
}

func printArtboard(w io.Writer, def *anim.ArtboardDef) {
	fmt.Fprintf(w, "\n  Artboard %q  %gx%g  shapes=%d\n",
		def.Name, def.Bounds.Width(), def.Bounds.Height(), len(def.Shapes))

	for _, a := range def.Animations {
		fmt.Fprintf(w, "    animation %-12q fps=%-4g frames=%-3d duration=%.2fs loop=%v\n",
			a.Name, a.FPS, a.FrameCount(), a.Duration(), a.Loop)
	}
	for _, sm := range def.StateMachines {
		fmt.Fprintf(w, "    state machine %q\n", sm.Name)
		for _, in := range sm.Inputs {
			fmt.Fprintf(w, "      input %-12q %-7s = %g\n", in.Name, in.Kind, in.Value)
		}
		for _, st := range sm.States {
			if st.Input < 0 {
				fmt.Fprintf(w, "      state %-12q -> %s (fallback)\n", st.Name, st.Animation.Name)
				continue
			}
			fmt.Fprintf(w, "      state %-12q -> %s when %s == %g\n",
				st.Name, st.Animation.Name, sm.Inputs[st.Input].Name, st.Equals)
		}
	}
}

// checkContract performs the same lookups the engine does at startup and
// releases everything it created.
func checkContract(ctx context.Context, w io.Writer, fetcher game.Fetcher, cfg *config.SceneConfig) error {
	store := game.NewAssetStore(anim.NewRuntime(), fetcher)
	defer store.Release()

	docs, err := store.LoadDocuments(ctx, cfg.Assets.WalkDocument, cfg.Assets.BackgroundDocument)
	if err != nil {
		return err
	}
	walkDoc, bgDoc := docs[0], docs[1]

	bg, err := store.Artboard(bgDoc, cfg.Background.Artboard)
	if err != nil {
		return err
	}
	defer bg.Release()
	bgSM, err := store.StateMachine(bgDoc, bg, cfg.Background.StateMachine)
	if err != nil {
		return err
	}
	defer bgSM.Release()
	fmt.Fprintf(w, "OK  background %q / %q\n", cfg.Background.Artboard, cfg.Background.StateMachine)

	// every variant must select a walk cycle of its own
	seen := make(map[string]int)
	for v := 0; v < cfg.Walk.VariantCount; v++ {
		ab, err := store.Artboard(walkDoc, cfg.Walk.Artboard)
		if err != nil {
			return err
		}
		sm, err := store.StateMachine(walkDoc, ab, cfg.Walk.StateMachine)
		if err != nil {
			ab.Release()
			return err
		}
		input, err := store.NumberInput(walkDoc, sm, cfg.Walk.VariantInput)
		if err != nil {
			sm.Release()
			ab.Release()
			return err
		}
		input.SetValue(float64(v))
		sm.Advance(0)
		state := sm.CurrentState()
		if prev, dup := seen[state]; dup {
			fmt.Fprintf(w, "WARN variant %d plays %q, same as variant %d\n", v, state, prev)
		} else {
			seen[state] = v
		}
		fmt.Fprintf(w, "OK  walk variant %d -> %q\n", v, state)
		sm.Release()
		ab.Release()
	}
	return nil
}
