// Package backdrop renders an animated landing page on [Ebitengine]: a field
// of drifting background shapes, a glow and a tilting hero frame that follow
// the pointer, a cross-fading image carousel, and a rotating quote line.
//
// # Quick start
//
//	cfg, err := backdrop.LoadConfig("page.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	scene := backdrop.NewScene()
//	page := backdrop.BuildPage(scene, cfg, backdrop.NewAssetLoader("."), nil)
//	backdrop.Run(scene, backdrop.RunConfig{
//		Title: cfg.Title, Width: cfg.Width, Height: cfg.Height,
//		OnResize: page.Resize,
//	})
//
// # Scene graph
//
// Every visual element is a [Node] in a tree rooted at [Scene.Root].
// Children inherit their parent's transform and alpha. [Scene.Update]
// advances one tick; [Scene.Advance] moves the virtual clock by an arbitrary
// step, which is how tests drive timers and tweens.
//
// # Frames and futures
//
// [Scene.RequestFrame] queues a callback for the next drawn frame. Several
// requests between two frames are independent, so callers that want one
// recomputation per frame keep their own pending flag (see [Parallax]).
//
// A [Future] is a single-fire continuation. Asset loads resolve futures from
// background goroutines; the scene polls them on the update goroutine, so
// continuations never race with the tree. [Scene.Track] returns a future
// that fires when a tween group completes.
//
// # Components
//
//   - [Parallax] maps pointer movement to glow position, hero tilt and
//     per-layer offsets, coalescing moves to one recomputation per frame.
//   - [Carousel] cycles image sources on an interval with an off-screen
//     load followed by a cross-fade.
//   - [QuoteProvider] picks quotes without immediate repeats.
//   - [GenerateBackground] scatters the decorative shapes.
//
// Reduced motion turns off the parallax projection and shape animation, and
// makes the carousel swap images directly.
//
// [Ebitengine]: https://ebitengine.org
package backdrop
