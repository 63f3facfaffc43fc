// Package key provides key event types and decoding for the input system.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: Identifies a keyboard key (special keys, function keys, or runes)
//   - Modifier: Represents modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: A single key press with modifiers
//   - Decoder: Turns a raw terminal byte stream into events
//
// Control characters are reported the way a keymap expects to see them:
// byte 0x11 decodes to the rune 'q' with ModCtrl, not to a dedicated key.
package key
