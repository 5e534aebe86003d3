// Package textscan provides the position-tracked text scanner shared by the
// control-file, dependency-specifier, and platform-expression grammars. A
// scanner records at most one diagnostic: the first error wins and the cursor
// jumps to end of input, so nested parse loops unwind without threading
// failure flags through every call.
package textscan
