package asset

// DefaultKeymap holds the built-in key bindings
// A user keymap uses the same sections; "none" unbinds a key
const DefaultKeymap = `
# Single-character keys; aliases: space
[keys]
space = "switch"
h = "left"
a = "left"
l = "right"
d = "right"
p = "pause"
r = "restart"
m = "menu"
q = "quit"
s = "mute"
n = "preset"

# Named keys: left right up down enter esc tab backspace ctrl-c ctrl-q
[special]
left = "left"
right = "right"
up = "switch"
enter = "confirm"
esc = "menu"
ctrl-c = "quit"
ctrl-q = "quit"
`
