package entity

import (
	"fmt"

	"github.com/milk9111/warehouse/asset"
	"github.com/milk9111/warehouse/ecs"
	"github.com/milk9111/warehouse/ecs/component"
)

// InstantiateScene creates a root entity at transform and one child entity
// per node of scene.
func InstantiateScene(w *ecs.World, h asset.Handle[*asset.Gltf], scene *asset.Scene, transform component.Transform) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("scene: world is nil")
	}
	root := ecs.CreateEntity(w)
	if err := ecs.Add(w, root, component.TransformComponent.Kind(), &transform); err != nil {
		return 0, fmt.Errorf("scene: add transform: %w", err)
	}
	if _, err := AttachScene(w, root, h, scene); err != nil {
		ecs.DestroyEntity(w, root)
		return 0, err
	}
	return root, nil
}

// AttachScene marks root as the instance of scene and spawns its nodes. It
// returns the node entities in depth-first order.
func AttachScene(w *ecs.World, root ecs.Entity, h asset.Handle[*asset.Gltf], scene *asset.Scene) ([]ecs.Entity, error) {
	if scene == nil {
		return nil, fmt.Errorf("scene: scene is nil")
	}

	var nodes []ecs.Entity
	var err error
	paths := make(map[*asset.Node]string)
	entities := make(map[*asset.Node]ecs.Entity)
	scene.Walk(func(n, parent *asset.Node, depth int) {
		if err != nil {
			return
		}
		p := n.Name
		parentEnt := root
		if parent != nil {
			p = paths[parent] + "/" + n.Name
			parentEnt = entities[parent]
		}
		paths[n] = p

		e := ecs.CreateEntity(w)
		entities[n] = e
		nodes = append(nodes, e)
		transform := component.Transform{Position: n.Translation, Rotation: n.Rotation, Scale: n.Scale}
		if err = ecs.Add(w, e, component.TransformComponent.Kind(), &transform); err != nil {
			return
		}
		err = ecs.Add(w, e, component.SceneNodeComponent.Kind(), &component.SceneNode{
			Name:   n.Name,
			Path:   p,
			Depth:  depth,
			Mesh:   n.Mesh,
			Root:   uint64(root),
			Parent: uint64(parentEnt),
			World:  transform.Matrix(),
		})
	})
	if err == nil {
		err = ecs.Add(w, root, component.SceneRootComponent.Kind(), &component.SceneRoot{
			Asset: h,
			Scene: scene.Name,
			Nodes: len(nodes),
		})
	}
	if err != nil {
		for _, e := range nodes {
			ecs.DestroyEntity(w, e)
		}
		return nil, fmt.Errorf("scene: instantiate %q: %w", scene.Name, err)
	}
	return nodes, nil
}

// DestroyScene removes root and every scene node attached to it.
func DestroyScene(w *ecs.World, root ecs.Entity) int {
	if w == nil {
		return 0
	}
	var nodes []ecs.Entity
	ecs.ForEach(w, component.SceneNodeComponent.Kind(), func(e ecs.Entity, n *component.SceneNode) {
		if ecs.Entity(n.Root) == root {
			nodes = append(nodes, e)
		}
	})
	removed := 0
	for _, e := range nodes {
		if ecs.DestroyEntity(w, e) {
			removed++
		}
	}
	if ecs.DestroyEntity(w, root) {
		removed++
	}
	return removed
}
