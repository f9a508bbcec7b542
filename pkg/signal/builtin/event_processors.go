package builtin

import (
	"github.com/expo-parsely/engagement-tracker/pkg/signal"
)

// Event types handled by the built-in processors.
const (
	TypeTouchStart        = "touch_start"
	TypeTouchMove         = "touch_move"
	TypeTouchEnd          = "touch_end"
	TypeTouchCancel       = "touch_cancel"
	TypeActivity          = "activity"
	TypeScroll            = "scroll"
	TypeVideoPlay         = "video_play"
	TypeVideoPause        = "video_pause"
	TypeVideoReset        = "video_reset"
	TypeAppState          = "app_state"
	TypePageView          = "page_view"
	TypeSessionStart      = "session_start"
	TypeSessionStop       = "session_stop"
	TypeElementRegister   = "element_register"
	TypeElementVisibility = "element_visibility"
	TypeElementClick      = "element_click"
)

// RegisterEventProcessors registers all built-in event processors.
func RegisterEventProcessors(registry *signal.EventProcessorRegistry) {
	registry.Register(&TouchStartEventProcessor{})
	registry.Register(&TouchMoveEventProcessor{})
	registry.Register(&TouchEndEventProcessor{})
	registry.Register(&TouchEndEventProcessor{Cancel: true})
	registry.Register(&ActivityEventProcessor{})
	registry.Register(&ScrollEventProcessor{})
	registry.Register(&VideoPlayEventProcessor{})
	registry.Register(&VideoPauseEventProcessor{})
	registry.Register(&VideoResetEventProcessor{})
	registry.Register(&AppStateEventProcessor{})
	registry.Register(&PageViewEventProcessor{})
	registry.Register(&SessionStartEventProcessor{})
	registry.Register(&SessionStopEventProcessor{})
	registry.Register(&ElementRegisterEventProcessor{})
	registry.Register(&ElementVisibilityEventProcessor{})
	registry.Register(&ElementClickEventProcessor{})
}
