// Package ecs bridges alienkitty interaction events into a Donburi world.
package ecs

import (
	"github.com/phanxgames/alienkitty"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for hover and click events.
var InteractionEventType = events.NewEventType[alienkitty.InteractionEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink that publishes to InteractionEventType.
// Events are queued until ProcessEvents runs on the world.
func NewDonburiSink(world donburi.World) alienkitty.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event alienkitty.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}
