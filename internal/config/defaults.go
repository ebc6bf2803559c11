package config

const (
	defaultStoreDir = "~/.local/share/clipforge"
	defaultLogDir   = "~/.local/share/clipforge/logs"

	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	defaultAudioSampleRate       = 22050
	defaultAudioWindowSeconds    = 2.0
	defaultAudioHopSeconds       = 0.5
	defaultBaselineWindowSeconds = 30.0
	defaultSpikeMultiplier       = 3.0
	defaultDensityDeltaRatio     = 0.15
	defaultDensityMinChanges     = 6
	defaultTransitionQuietRatio  = 0.5
	defaultTransitionLoudRatio   = 2.0
	defaultMinCandidates         = 4

	defaultHUDFrameStrideSeconds = 10.0
	defaultRegionMatchFraction   = 0.05
	defaultMinMatchedRegions     = 2
	defaultMinSpanSeconds        = 20.0
	defaultGapBridgeSeconds      = 15.0

	defaultEventFrameStrideSeconds = 2.0
	defaultEventConfidenceFloor    = 0.5

	defaultCorroborationToleranceSeconds = 8.0
	defaultMergeToleranceSeconds         = 1.0
	defaultMinSpacingSeconds             = 20.0
	defaultMinClipSeconds                = 8.0
	defaultMaxClipSeconds                = 45.0
	defaultMaxHighlights                 = 8
	defaultMinGameplayOverlap            = 0.5
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StoreDir: defaultStoreDir,
			LogDir:   defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Tools: Tools{
			FFmpeg:    "ffmpeg",
			FFprobe:   "ffprobe",
			Tesseract: "tesseract",
		},
		Audio: Audio{
			SampleRate:            defaultAudioSampleRate,
			WindowSeconds:         defaultAudioWindowSeconds,
			HopSeconds:            defaultAudioHopSeconds,
			BaselineWindowSeconds: defaultBaselineWindowSeconds,
			SpikeMultiplier:       defaultSpikeMultiplier,
			DensityDeltaRatio:     defaultDensityDeltaRatio,
			DensityMinChanges:     defaultDensityMinChanges,
			TransitionQuietRatio:  defaultTransitionQuietRatio,
			TransitionLoudRatio:   defaultTransitionLoudRatio,
			MinCandidates:         defaultMinCandidates,
		},
		HUD: HUD{
			FrameStrideSeconds:  defaultHUDFrameStrideSeconds,
			RegionMatchFraction: defaultRegionMatchFraction,
			MinMatchedRegions:   defaultMinMatchedRegions,
			MinSpanSeconds:      defaultMinSpanSeconds,
			GapBridgeSeconds:    defaultGapBridgeSeconds,
		},
		Events: Events{
			FrameStrideSeconds: defaultEventFrameStrideSeconds,
			ConfidenceFloor:    defaultEventConfidenceFloor,
		},
		Clips: Clips{
			CorroborationToleranceSeconds: defaultCorroborationToleranceSeconds,
			MergeToleranceSeconds:         defaultMergeToleranceSeconds,
			MinSpacingSeconds:             defaultMinSpacingSeconds,
			MinClipSeconds:                defaultMinClipSeconds,
			MaxClipSeconds:                defaultMaxClipSeconds,
			MaxHighlights:                 defaultMaxHighlights,
			MinGameplayOverlap:            defaultMinGameplayOverlap,
		},
	}
}
