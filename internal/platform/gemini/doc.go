// Package gemini implements the generation.Generator interface using
// Google's Gemini API. It owns prompt construction, response parsing, and
// retry behavior; callers see only the generation package's types and
// errors.
package gemini
