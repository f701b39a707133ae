package game

import (
	"context"
	"fmt"
	"io/fs"
	"path"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/decker502/bearscene/internal/anim"
	"github.com/decker502/bearscene/pkg/embedded"
	"github.com/decker502/bearscene/pkg/logging"
)

// Fetcher retrieves raw asset bytes by path.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// FetchFunc adapts a function to the Fetcher interface.
type FetchFunc func(ctx context.Context, path string) ([]byte, error)

func (f FetchFunc) Fetch(ctx context.Context, path string) ([]byte, error) {
	return f(ctx, path)
}

// FSFetcher serves assets from a file system, e.g. os.DirFS(".") for tools or
// fstest.MapFS in tests.
func FSFetcher(fsys fs.FS) Fetcher {
	return FetchFunc(func(ctx context.Context, name string) ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return fs.ReadFile(fsys, path.Clean(name))
	})
}

// EmbeddedFetcher serves assets embedded into the binary. embedded.Init must
// have been called.
func EmbeddedFetcher() Fetcher {
	return FetchFunc(func(ctx context.Context, name string) ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return embedded.ReadFile(name)
	})
}

// AssetStore loads animation documents into a runtime and owns them until
// Release.
type AssetStore struct {
	runtime   *anim.Runtime
	fetcher   Fetcher
	documents []*anim.Document
	paths     map[*anim.Document]string
	log       *zap.Logger
}

// NewAssetStore creates a store that registers documents with rt.
func NewAssetStore(rt *anim.Runtime, fetcher Fetcher) *AssetStore {
	return &AssetStore{
		runtime: rt,
		fetcher: fetcher,
		paths:   make(map[*anim.Document]string),
		log:     logging.Named("AssetStore"),
	}
}

// Runtime returns the runtime documents are registered with.
func (s *AssetStore) Runtime() *anim.Runtime { return s.runtime }

// LoadDocuments fetches and decodes the given documents concurrently and
// returns them in argument order. Either every document is loaded or none is:
// on failure the first error is returned as an *AssetLoadError.
func (s *AssetStore) LoadDocuments(ctx context.Context, paths ...string) ([]*anim.Document, error) {
	decoded := make([]*anim.DecodedDocument, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			data, err := s.fetcher.Fetch(gctx, p)
			if err != nil {
				return &AssetLoadError{Path: p, Op: OpFetch, Err: err}
			}
			d, err := anim.Decode(data)
			if err != nil {
				return &AssetLoadError{Path: p, Op: OpDecode, Err: err}
			}
			decoded[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Runtime bookkeeping is single-goroutine, adopt after the join.
	docs := make([]*anim.Document, len(paths))
	for i, d := range decoded {
		docs[i] = s.runtime.Adopt(d)
		s.documents = append(s.documents, docs[i])
		s.paths[docs[i]] = paths[i]
		s.log.Debug("loaded animation document",
			zap.String("path", paths[i]),
			zap.Strings("artboards", docs[i].ArtboardNames()))
	}
	return docs, nil
}

// PathOf returns the path a document was loaded from.
func (s *AssetStore) PathOf(doc *anim.Document) string {
	return s.paths[doc]
}

// Artboard instantiates the named artboard of doc, reporting a missing name
// as an *AssetContractError.
func (s *AssetStore) Artboard(doc *anim.Document, name string) (*anim.Artboard, error) {
	ab, err := doc.ArtboardByName(name)
	if err != nil {
		return nil, &AssetContractError{Document: s.PathOf(doc), Kind: "artboard", Name: name, Err: err}
	}
	return ab, nil
}

// StateMachine instantiates the named state machine of ab, reporting a
// missing name as an *AssetContractError.
func (s *AssetStore) StateMachine(doc *anim.Document, ab *anim.Artboard, name string) (*anim.StateMachineInstance, error) {
	def, err := ab.StateMachineByName(name)
	if err != nil {
		return nil, &AssetContractError{Document: s.PathOf(doc), Kind: "state machine", Name: name, Err: err}
	}
	sm, err := s.runtime.NewStateMachineInstance(def, ab)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate state machine %q: %w", name, err)
	}
	return sm, nil
}

// NumberInput finds the first input of sm named name, by exact match, and
// returns its numeric view.
func (s *AssetStore) NumberInput(doc *anim.Document, sm *anim.StateMachineInstance, name string) (*anim.NumberInput, error) {
	for i := 0; i < sm.InputCount(); i++ {
		in := sm.Input(i)
		if in.Name() != name {
			continue
		}
		n, ok := in.AsNumber()
		if !ok {
			return nil, &AssetContractError{
				Document: s.PathOf(doc),
				Kind:     "input",
				Name:     name,
				Err:      fmt.Errorf("is a %s input, want number", in.Kind()),
			}
		}
		return n, nil
	}
	return nil, &AssetContractError{Document: s.PathOf(doc), Kind: "input", Name: name, Err: anim.ErrNotFound}
}

// Release frees every document loaded by this store. Artboards instantiated
// from them are owned elsewhere and must be released by their owners.
func (s *AssetStore) Release() {
	for _, d := range s.documents {
		d.Release()
	}
	s.documents = nil
	clear(s.paths)
}
