// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"github.com/sirupsen/logrus"

	"github.com/expo-parsely/engagement-tracker/pkg/bridge"
	"github.com/expo-parsely/engagement-tracker/pkg/signal"
	signalBuiltin "github.com/expo-parsely/engagement-tracker/pkg/signal/builtin"
)

// InitDispatcher creates a signal dispatcher with the builtin event
// processors routed to components.
//
// To add a new event type:
// 1. Create a processor in pkg/signal/builtin/
// 2. Implement the EventProcessor interface
// 3. Register it in pkg/signal/builtin/event_processors.go
func InitDispatcher(components *Components, b bridge.Bridge) *signal.Dispatcher {
	registry := signal.NewEventProcessorRegistry()
	signalBuiltin.RegisterEventProcessors(registry)

	dispatcher := signal.NewDispatcher(registry, &signal.Targets{
		Tracker:   components.Tracker,
		Detector:  components.Detector,
		Lifecycle: components.Lifecycle,
		Elements:  components.Elements,
		Bridge:    b,
	})
	logrus.Infof("initialized signal dispatcher with %d event processors", dispatcher.Registry().Count())

	return dispatcher
}
