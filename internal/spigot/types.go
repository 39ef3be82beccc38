package spigot

// Digit is one decimal digit of π, 0-9. D[0] is always 3, the integer part.
type Digit int
