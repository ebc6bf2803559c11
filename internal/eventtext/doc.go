// Package eventtext extracts game events from on-screen announcement text.
//
// A scanner samples frames inside known gameplay intervals, crops the
// announcement area, and hands the crop to a Recognizer (tesseract by
// default). Recognized text is normalized and matched against a small
// keyword taxonomy of kill and objective announcements. Recognition is
// best-effort throughout: a missing recognizer binary, an unreadable frame,
// or garbled text all degrade to fewer events, never to a failed run.
package eventtext
