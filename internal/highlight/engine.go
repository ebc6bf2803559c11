package highlight

import (
	"context"
	"log/slog"
	"sync"

	"clipforge/internal/audioexcite"
	"clipforge/internal/config"
	"clipforge/internal/eventtext"
	"clipforge/internal/gameplay"
	"clipforge/internal/logging"
	"clipforge/internal/media"
	"clipforge/internal/services"
)

type audioAnalyzer interface {
	Analyze(ctx context.Context, src media.Handle) (audioexcite.Result, error)
}

type gameplayClassifier interface {
	Classify(ctx context.Context, src media.Handle, analyzed float64) (gameplay.Result, error)
}

type eventScanner interface {
	Scan(ctx context.Context, src media.Handle, intervals []gameplay.Interval, analyzed float64) ([]eventtext.Event, error)
}

// Engine owns the detection pipeline for one configuration.
type Engine struct {
	cfg    *config.Config
	logger *slog.Logger

	audio    audioAnalyzer
	gameplay gameplayClassifier
	events   eventScanner

	progressMu sync.Mutex
	progress   ProgressFunc
}

// New wires an Engine from the configuration. Text recognition is only
// enabled when a tesseract binary is configured.
func New(cfg *config.Config, logger *slog.Logger) *Engine {
	var recognizer eventtext.Recognizer
	if binary := cfg.TesseractBinary(); binary != "" {
		recognizer = eventtext.NewTesseract(binary)
	}
	return &Engine{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "highlight"),
		audio:    audioexcite.New(cfg, logger),
		gameplay: gameplay.New(cfg, logger),
		events:   eventtext.New(cfg, logger, recognizer),
	}
}

// SetProgress registers a stage-completion callback. Pass nil to clear it.
func (e *Engine) SetProgress(fn ProgressFunc) {
	e.progressMu.Lock()
	e.progress = fn
	e.progressMu.Unlock()
}

func (e *Engine) notify(stage string) {
	e.progressMu.Lock()
	fn := e.progress
	if fn != nil {
		fn(stage)
	}
	e.progressMu.Unlock()
}

// Detect runs the full pipeline over the source. The audio and gameplay
// stages run concurrently; a failure in either fails the run.
func (e *Engine) Detect(ctx context.Context, src media.Handle) (Report, error) {
	analyzed := src.Duration()
	if prefix := e.cfg.Clips.AnalysisPrefixSeconds; prefix > 0 && prefix < analyzed {
		analyzed = prefix
	}

	var (
		wg          sync.WaitGroup
		audioRes    audioexcite.Result
		audioErr    error
		gameplayRes gameplay.Result
		gameplayErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		audioRes, audioErr = e.audio.Analyze(ctx, src)
		if audioErr == nil {
			e.notify(StageAudio)
		}
	}()
	go func() {
		defer wg.Done()
		gameplayRes, gameplayErr = e.gameplay.Classify(ctx, src, analyzed)
		if gameplayErr == nil {
			e.notify(StageGameplay)
		}
	}()
	wg.Wait()

	if audioErr != nil {
		return Report{}, audioErr
	}
	if gameplayErr != nil {
		return Report{}, gameplayErr
	}

	events, err := e.events.Scan(ctx, src, gameplayRes.Intervals, analyzed)
	if err != nil {
		return Report{}, err
	}
	e.notify(StageEvents)

	windows := e.correlate(audioRes.Candidates, gameplayRes, events, analyzed)
	e.notify(StageCorrelate)
	if len(windows) == 0 && len(audioRes.Candidates) > 0 {
		// Empty output for candidate-bearing media is valid but worth a trace.
		e.logger.Warn("all candidates failed gating or constraints",
			logging.Error(services.Wrap(services.ErrInsufficientSignal, "highlight", "correlate", "no windows survived", nil)))
	}

	e.logger.Info("detection complete",
		logging.Float64("analyzed_seconds", analyzed),
		logging.Int("audio_candidates", len(audioRes.Candidates)),
		logging.Int("gameplay_intervals", len(gameplayRes.Intervals)),
		logging.Int("events", len(events)),
		logging.Int("windows", len(windows)),
		logging.Bool("degraded_audio", audioRes.Degraded),
		logging.Bool("gameplay_fallback", gameplayRes.Fallback))

	return Report{
		Windows:          windows,
		Events:           events,
		AnalyzedSeconds:  analyzed,
		DegradedAudio:    audioRes.Degraded,
		AudioFallback:    audioRes.FallbackFired,
		GameplayFallback: gameplayRes.Fallback,
	}, nil
}
