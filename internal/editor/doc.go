// Package editor implements the render/input core of the editor.
//
// An Editor owns a terminal surface, a cursor position and a run state.
// Run repeats one cycle until the user quits:
//
//  1. refresh the screen (rows, welcome banner, cursor)
//  2. stop if quitting; the farewell line has already been painted
//  3. read one key and apply its action
//
// Surface I/O failures end the loop with a *FatalError.
package editor
