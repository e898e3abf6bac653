package internal

// Version is the palabras release version.
const Version = "0.3.0"
