// Package generator builds roadmaps locally. A PhaseSource supplies the
// phases (a Gemini model through google.golang.org/genai, or the built-in
// template), and the market insights catalog supplies the insights for the
// dream job.
package generator
