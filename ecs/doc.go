// Package ecs provides a Donburi adapter for alienkitty's hit-test events.
//
// [NewDonburiSink] publishes every hover transition and click resolved by a
// [alienkitty.HitTester] into a [Donburi] world as typed events:
//
//	sink := ecs.NewDonburiSink(world)
//	app.HitTester().SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
