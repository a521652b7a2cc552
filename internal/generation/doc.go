// Package generation provides interfaces and types for interacting with
// external AI/LLM services for content generation. It abstracts the details
// of the model API integration (Gemini), allowing the application to
// generate quizzes, passages, dictionary content, transcriptions, and chat
// replies without coupling to a specific external service.
package generation
