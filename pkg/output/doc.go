// Package output renders dotstrap's results for humans.
//
// A Renderer writes app installer summaries, dotfiles reports and the
// environment classification to an io.Writer. Styling comes from the
// styles subpackage and is applied only when the writer is a color
// capable terminal; otherwise the output is plain text, stable enough
// to diff between runs.
package output
