// Package gemini provides a client for the Google Generative Language API.
//
// The client calls the generateContent REST endpoint directly and falls back
// through a chain of models so that preview model retirements do not break
// case study generation.
package gemini
