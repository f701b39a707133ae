// Package ecs stores scene entities as small integer IDs with attached
// components. Iteration follows creation order, and destruction is deferred
// so systems can mark entities while scanning and remove them afterwards.
package ecs

import (
	"reflect"
	"slices"
)

// EntityID is the unique identifier of an entity. 0 is never issued.
type EntityID uint64

// EntityManager manages all entities and their components.
type EntityManager struct {
	nextID uint64
	// live entities in creation order
	order []EntityID
	// EntityID -> component type -> component instance
	components map[EntityID]map[reflect.Type]any
	// entities marked by DestroyEntity, removed by RemoveMarkedEntities
	entitiesToDestroy []EntityID
	marked            map[EntityID]bool
}

// NewEntityManager creates an empty EntityManager.
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:     1,
		components: make(map[EntityID]map[reflect.Type]any),
		marked:     make(map[EntityID]bool),
	}
}

// CreateEntity creates a new entity and returns its ID.
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]any)
	em.order = append(em.order, id)
	return id
}

// Exists reports whether the entity is live (marked entities are still live).
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// DestroyEntity marks an entity for removal. The entity keeps its components
// until RemoveMarkedEntities runs. Marking twice is a no-op.
func (em *EntityManager) DestroyEntity(id EntityID) {
	if !em.Exists(id) || em.marked[id] {
		return
	}
	em.marked[id] = true
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// IsMarked reports whether the entity is waiting for removal.
func (em *EntityManager) IsMarked(id EntityID) bool {
	return em.marked[id]
}

// AddComponent attaches a component, replacing any component of the same type.
func (em *EntityManager) AddComponent(id EntityID, component any) {
	if compMap, exists := em.components[id]; exists {
		compMap[reflect.TypeOf(component)] = component
	}
}

// RemoveComponent detaches the component of the given type.
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, componentType)
	}
}

// GetComponent returns the entity's component of the given type.
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (any, bool) {
	if compMap, exists := em.components[id]; exists {
		if comp, found := compMap[componentType]; found {
			return comp, true
		}
	}
	return nil, false
}

// HasComponent reports whether the entity has a component of the given type.
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, found := em.GetComponent(id, componentType)
	return found
}

// RemoveMarkedEntities deletes every marked entity and returns their IDs in
// marking order.
func (em *EntityManager) RemoveMarkedEntities() []EntityID {
	if len(em.entitiesToDestroy) == 0 {
		return nil
	}
	removed := slices.Clone(em.entitiesToDestroy)
	for _, id := range removed {
		delete(em.components, id)
		delete(em.marked, id)
	}
	em.order = slices.DeleteFunc(em.order, func(id EntityID) bool {
		_, live := em.components[id]
		return !live
	})
	em.entitiesToDestroy = em.entitiesToDestroy[:0]
	return removed
}

// EntityCount returns the number of live entities.
func (em *EntityManager) EntityCount() int {
	return len(em.order)
}

// Entities returns all live entities in creation order.
func (em *EntityManager) Entities() []EntityID {
	return slices.Clone(em.order)
}

// GetEntitiesWith returns, in creation order, every entity that has all of
// the given component types.
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)
	for _, id := range em.order {
		compMap := em.components[id]
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}
	return result
}

// GetComponent is the typed form of EntityManager.GetComponent.
//
//	actor, ok := ecs.GetComponent[*components.ActorComponent](em, id)
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponent(id, reflect.TypeFor[T]())
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// GetEntitiesWith1 returns the entities that have a component of type T.
func GetEntitiesWith1[T any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(reflect.TypeFor[T]())
}
