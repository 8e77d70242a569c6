package player

// Config holds the player tuning. Zero fields take the defaults.
type Config struct {
	Lives            int     `yaml:"lives"`
	Margin           float64 `yaml:"margin"`
	MoveSpeed        float64 `yaml:"move_speed"`
	MinMoveSpeed     float64 `yaml:"min_move_speed"`
	MaxMoveSpeed     float64 `yaml:"max_move_speed"`
	ShootCooldown    float64 `yaml:"shoot_cooldown"`
	MinShootCooldown float64 `yaml:"min_shoot_cooldown"`
	BulletSpeed      float64 `yaml:"bullet_speed"`
	// SpreadDegrees is the angle between the centre shot and each side shot
	// of a fan.
	SpreadDegrees      float64 `yaml:"spread_degrees"`
	BadgeCooldownScale float64 `yaml:"badge_cooldown_scale"`
	BadgeSpeedScale    float64 `yaml:"badge_speed_scale"`
}

func DefaultConfig() Config {
	return Config{
		Lives:              4,
		Margin:             16,
		MoveSpeed:          120,
		MinMoveSpeed:       100,
		MaxMoveSpeed:       200,
		ShootCooldown:      0.3,
		MinShootCooldown:   0.05,
		BulletSpeed:        400,
		SpreadDegrees:      15,
		BadgeCooldownScale: 0.75,
		BadgeSpeedScale:    1.2,
	}
}

func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.Lives <= 0 {
		c.Lives = d.Lives
	}
	if c.Margin <= 0 {
		c.Margin = d.Margin
	}
	if c.MinMoveSpeed <= 0 {
		c.MinMoveSpeed = d.MinMoveSpeed
	}
	if c.MaxMoveSpeed < c.MinMoveSpeed {
		c.MaxMoveSpeed = max(d.MaxMoveSpeed, c.MinMoveSpeed)
	}
	if c.MoveSpeed <= 0 {
		c.MoveSpeed = d.MoveSpeed
	}
	c.MoveSpeed = min(max(c.MoveSpeed, c.MinMoveSpeed), c.MaxMoveSpeed)
	if c.ShootCooldown <= 0 {
		c.ShootCooldown = d.ShootCooldown
	}
	if c.MinShootCooldown <= 0 {
		c.MinShootCooldown = d.MinShootCooldown
	}
	if c.BulletSpeed <= 0 {
		c.BulletSpeed = d.BulletSpeed
	}
	if c.SpreadDegrees <= 0 {
		c.SpreadDegrees = d.SpreadDegrees
	}
	if c.BadgeCooldownScale <= 0 {
		c.BadgeCooldownScale = d.BadgeCooldownScale
	}
	if c.BadgeSpeedScale <= 0 {
		c.BadgeSpeedScale = d.BadgeSpeedScale
	}
	return c
}
