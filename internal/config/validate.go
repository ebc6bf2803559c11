package config

import (
	"errors"
	"fmt"

	"clipforge/internal/services"
)

// Validate ensures the configuration is usable. Threshold errors fail here,
// before any analysis starts, because they indicate caller misuse.
func (c *Config) Validate() error {
	for _, check := range []func() error{
		c.validateLogging,
		c.validateAudio,
		c.validateHUD,
		c.validateEvents,
		c.validateClips,
	} {
		if err := check(); err != nil {
			return fmt.Errorf("%w: %s", services.ErrConfiguration, err)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateAudio() error {
	a := c.Audio
	if a.SampleRate <= 0 {
		return errors.New("audio.sample_rate must be positive")
	}
	if a.WindowSeconds <= 0 {
		return errors.New("audio.window_seconds must be positive")
	}
	if a.HopSeconds <= 0 {
		return errors.New("audio.hop_seconds must be positive")
	}
	if a.HopSeconds > a.WindowSeconds {
		return errors.New("audio.hop_seconds must not exceed audio.window_seconds")
	}
	if a.BaselineWindowSeconds < a.WindowSeconds {
		return errors.New("audio.baseline_window_seconds must cover at least one window")
	}
	if a.SpikeMultiplier <= 1 {
		return errors.New("audio.spike_multiplier must be greater than 1")
	}
	if a.DensityDeltaRatio <= 0 || a.DensityDeltaRatio > 1 {
		return errors.New("audio.density_delta_ratio must be in (0, 1]")
	}
	if a.DensityMinChanges <= 0 {
		return errors.New("audio.density_min_changes must be positive")
	}
	if a.TransitionQuietRatio <= 0 || a.TransitionQuietRatio >= 1 {
		return errors.New("audio.transition_quiet_ratio must be in (0, 1)")
	}
	if a.TransitionLoudRatio <= 1 {
		return errors.New("audio.transition_loud_ratio must be greater than 1")
	}
	if a.MinCandidates < 0 {
		return errors.New("audio.min_candidates must not be negative")
	}
	return nil
}

func (c *Config) validateHUD() error {
	h := c.HUD
	if h.FrameStrideSeconds <= 0 {
		return errors.New("hud.frame_stride_seconds must be positive")
	}
	if h.RegionMatchFraction <= 0 || h.RegionMatchFraction > 1 {
		return errors.New("hud.region_match_fraction must be in (0, 1]")
	}
	if h.MinMatchedRegions < 1 || h.MinMatchedRegions > 3 {
		return errors.New("hud.min_matched_regions must be between 1 and 3")
	}
	if h.MinSpanSeconds < 0 {
		return errors.New("hud.min_span_seconds must not be negative")
	}
	if h.GapBridgeSeconds < 0 {
		return errors.New("hud.gap_bridge_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateEvents() error {
	e := c.Events
	if e.FrameStrideSeconds <= 0 {
		return errors.New("events.frame_stride_seconds must be positive")
	}
	if e.ConfidenceFloor < 0 || e.ConfidenceFloor > 1 {
		return errors.New("events.confidence_floor must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateClips() error {
	cl := c.Clips
	if cl.CorroborationToleranceSeconds < 0 {
		return errors.New("clips.corroboration_tolerance_seconds must not be negative")
	}
	if cl.MergeToleranceSeconds < 0 {
		return errors.New("clips.merge_tolerance_seconds must not be negative")
	}
	if cl.MinSpacingSeconds < 0 {
		return errors.New("clips.min_spacing_seconds must not be negative")
	}
	if cl.MinClipSeconds <= 0 {
		return errors.New("clips.min_clip_seconds must be positive")
	}
	if cl.MaxClipSeconds < cl.MinClipSeconds {
		return errors.New("clips.max_clip_seconds must be at least clips.min_clip_seconds")
	}
	if cl.MaxHighlights <= 0 {
		return errors.New("clips.max_highlights must be positive")
	}
	if cl.MinGameplayOverlap <= 0 || cl.MinGameplayOverlap > 1 {
		return errors.New("clips.min_gameplay_overlap must be in (0, 1]")
	}
	if cl.AnalysisPrefixSeconds < 0 {
		return errors.New("clips.analysis_prefix_seconds must not be negative")
	}
	return nil
}
