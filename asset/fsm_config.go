package asset

// DefaultRunFSMConfig is the run state graph
// The start and restart edges build a fresh run; resume keeps the paused one
const DefaultRunFSMConfig = `
initial = "MENU"

[states.MENU]
on_enter = [
    { action = "EnterMenu" },
]
transitions = [
    { trigger = "start", target = "PLAYING", actions = [{ action = "NewRun" }] },
]

[states.PLAYING]
on_enter = [
    { action = "ClockRun" },
    { action = "Hum", args = { on = true } },
]
on_exit = [
    { action = "ClockHold" },
    { action = "Hum", args = { on = false } },
]
transitions = [
    { trigger = "pause", target = "PAUSED" },
    { trigger = "collide", target = "GAME_OVER" },
    { trigger = "menu", target = "MENU" },
]

[states.PAUSED]
on_enter = [
    { action = "Cue", args = { sound = "pause" } },
]
transitions = [
    { trigger = "resume", target = "PLAYING" },
    { trigger = "menu", target = "MENU" },
    { trigger = "collide", target = "GAME_OVER" },
]

[states.GAME_OVER]
on_enter = [
    { action = "EndRun" },
    { action = "Cue", args = { sound = "crash" } },
]
transitions = [
    { trigger = "restart", target = "PLAYING", actions = [{ action = "NewRun" }] },
    { trigger = "menu", target = "MENU" },
]
`
