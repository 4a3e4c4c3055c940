// Package environment classifies the machine dotstrap is running on.
//
// Detect answers the questions every other component asks: which Linux
// family is this, can we elevate, and where (if anywhere) do brew and mamba
// live. The result is an immutable Classification computed once per run.
// Detect never installs or changes anything.
package environment
