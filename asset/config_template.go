package asset

// ConfigTemplate is written by -init-config; keys left out keep their defaults
const ConfigTemplate = `# roadrunner configuration
# Environment overrides: ROADRUNNER_PRESET ROADRUNNER_SEED ROADRUNNER_TICK_RATE
# ROADRUNNER_CONTROL ROADRUNNER_LANES ROADRUNNER_COLLISION_MODE

# classic | three_lane | drag | narrow
preset = "classic"

[track]
width = 2.0
segment_length = 2.0
draw_distance = 120
curve_max = 0.003
# 0 keeps the road at full width
narrow_every = 0

[obstacles]
gap_min = 18
gap_max = 32
lanes = 2
lane_offset = 0.5

[player]
# lane | drag
control = "lane"
radius = 0.25

[speed]
base = 5
increase_interval = 10
max = 40

[score]
combo_threshold = 10
combo_multiplier = 1.5

[collision]
# lane | continuous
mode = "lane"
depth_tolerance = 0.6

[loop]
tick_rate = 60
# 0 seeds from the clock
seed = 0
`
