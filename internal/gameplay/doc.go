// Package gameplay decides which stretches of a recording show active play
// rather than menus, loading screens, or replays.
//
// The classifier samples frames at a fixed stride and checks a small set of
// HUD regions (minimap, ability bar, health bar) for the saturated UI colors
// those elements render with. Per-frame verdicts are assembled into time
// intervals, short spans are dropped, and nearby spans are bridged. When the
// video track is not decodable or nothing matches, a single full-range
// fallback interval is emitted at low confidence so later stages keep
// working on audio evidence alone.
package gameplay
