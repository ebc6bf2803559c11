// Package ffmpegsrc implements media.Handle on top of the ffmpeg and
// ffprobe binaries.
//
// Audio is decoded on demand to mono signed 16-bit PCM at the configured
// rate; frames are extracted as raw RGB24. Per-range decode failures are
// reported as degraded input so the pipeline continues with whatever signal
// streams still work. The source holds no open processes between calls and
// is safe for concurrent readers.
package ffmpegsrc
