package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	StoreDir string `toml:"store_dir"`
	LogDir   string `toml:"log_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Tools names the external binaries the media source shells out to.
type Tools struct {
	FFmpeg    string `toml:"ffmpeg"`
	FFprobe   string `toml:"ffprobe"`
	Tesseract string `toml:"tesseract"`
}

// Audio contains thresholds for the audio excitement analyzer.
type Audio struct {
	// SampleRate is the mono decode rate requested from ffmpeg.
	SampleRate int `toml:"sample_rate"`
	// WindowSeconds is the feature window length; HopSeconds the stride.
	WindowSeconds float64 `toml:"window_seconds"`
	HopSeconds    float64 `toml:"hop_seconds"`
	// BaselineWindowSeconds bounds the rolling energy baseline.
	BaselineWindowSeconds float64 `toml:"baseline_window_seconds"`
	// SpikeMultiplier flags windows louder than baseline by this factor.
	SpikeMultiplier float64 `toml:"spike_multiplier"`
	// DensityDeltaRatio is the relative RMS change between consecutive
	// sub-chunks that counts toward density; DensityMinChanges is how many
	// such changes a window needs before it flags as busy.
	DensityDeltaRatio float64 `toml:"density_delta_ratio"`
	DensityMinChanges int     `toml:"density_min_changes"`
	// TransitionQuietRatio and TransitionLoudRatio bound the quiet-to-loud
	// onset detector, both relative to the rolling baseline.
	TransitionQuietRatio float64 `toml:"transition_quiet_ratio"`
	TransitionLoudRatio  float64 `toml:"transition_loud_ratio"`
	// MinCandidates triggers the periodic fallback when real detections are
	// sparser than this.
	MinCandidates int `toml:"min_candidates"`
}

// HUD contains thresholds for the gameplay period classifier.
type HUD struct {
	FrameStrideSeconds float64 `toml:"frame_stride_seconds"`
	// RegionMatchFraction is the minimum fraction of UI-colored pixels for a
	// HUD region to count as present.
	RegionMatchFraction float64 `toml:"region_match_fraction"`
	// MinMatchedRegions of the three tracked regions must be present for a
	// sample to classify as gameplay.
	MinMatchedRegions int `toml:"min_matched_regions"`
	// MinSpanSeconds suppresses single-sample flicker; GapBridgeSeconds
	// merges gameplay spans separated by short UI overlays.
	MinSpanSeconds   float64 `toml:"min_span_seconds"`
	GapBridgeSeconds float64 `toml:"gap_bridge_seconds"`
}

// Events contains thresholds for the on-screen event text scanner.
type Events struct {
	FrameStrideSeconds float64 `toml:"frame_stride_seconds"`
	// ConfidenceFloor drops ambiguous or partial text matches.
	ConfidenceFloor float64 `toml:"confidence_floor"`
}

// Clips contains the correlation, scoring, and output constraints.
type Clips struct {
	CorroborationToleranceSeconds float64 `toml:"corroboration_tolerance_seconds"`
	// MergeToleranceSeconds is the widest gap between two scored windows that
	// still merges them into one.
	MergeToleranceSeconds float64 `toml:"merge_tolerance_seconds"`
	MinSpacingSeconds     float64 `toml:"min_spacing_seconds"`
	MinClipSeconds        float64 `toml:"min_clip_seconds"`
	MaxClipSeconds        float64 `toml:"max_clip_seconds"`
	MaxHighlights         int     `toml:"max_highlights"`
	// MinGameplayOverlap is the fraction of a candidate that must fall inside
	// a gameplay interval to survive gating.
	MinGameplayOverlap float64 `toml:"min_gameplay_overlap"`
	// AnalysisPrefixSeconds caps analysis to an early prefix of the media.
	// Zero analyzes the whole file. The bound trades recall for a hard
	// resource ceiling; the early portion of a recording is not necessarily
	// representative.
	AnalysisPrefixSeconds float64 `toml:"analysis_prefix_seconds"`
}

// Config encapsulates all configuration values for clipforge.
//
// Configuration sections by subsystem:
//   - Paths: store and log directories
//   - Logging: log format and level
//   - Tools: external binary names (ffmpeg, ffprobe, tesseract)
//   - Audio: excitement analyzer thresholds
//   - HUD: gameplay classifier thresholds
//   - Events: on-screen text scanner thresholds
//   - Clips: correlation, scoring, and output constraints
type Config struct {
	Paths   Paths   `toml:"paths"`
	Logging Logging `toml:"logging"`
	Tools   Tools   `toml:"tools"`
	Audio   Audio   `toml:"audio"`
	HUD     HUD     `toml:"hud"`
	Events  Events  `toml:"events"`
	Clips   Clips   `toml:"clips"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/clipforge/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("clipforge.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the store and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StoreDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable name used for media decode.
func (c *Config) FFmpegBinary() string {
	return binaryOrDefault(c.Tools.FFmpeg, "ffmpeg")
}

// FFprobeBinary returns the ffprobe executable name used for media inspection.
func (c *Config) FFprobeBinary() string {
	return binaryOrDefault(c.Tools.FFprobe, "ffprobe")
}

// TesseractBinary returns the tesseract executable name used for on-screen
// text recognition. An empty tools.tesseract disables recognition entirely.
func (c *Config) TesseractBinary() string {
	return strings.TrimSpace(c.Tools.Tesseract)
}

func binaryOrDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
