package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/corgi/engine/internal/component"
	"github.com/corgi/engine/internal/config"
	"github.com/corgi/engine/internal/logging"
	"github.com/corgi/engine/internal/scene"
	"github.com/corgi/engine/internal/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/scene.toml"
	if p := os.Getenv("CORGI_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Build the scene and its systems
	sc := scene.New(cfg.Scene, log)
	defer sc.Close()
	sc.Register(system.NewMovementSystem(sc))
	sc.Register(system.NewLifetimeSystem(sc))

	populate(sc)
	log.Info("scene ready",
		zap.String("scene", sc.Name()),
		zap.Int("entities", sc.Entities().Len()),
		zap.Int("pools", sc.Pools().Len()),
	)

	// 4. Tick loop
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(cfg.Scene.TickRate)
	defer ticker.Stop()

	last := time.Now()
	for tick := 1; cfg.Demo.Ticks == 0 || tick <= cfg.Demo.Ticks; tick++ {
		select {
		case <-ctx.Done():
			log.Info("shutting down", zap.Int("tick", tick))
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if err := sc.Tick(dt); err != nil {
				// a failed tick is dropped; the next one starts clean
				log.Error("tick aborted", zap.Int("tick", tick), zap.Error(err))
			}
		}
	}

	if player, ok := sc.Entities().Find("Player"); ok {
		pos := scene.GetComponent[component.Position](player)
		log.Info("demo finished",
			zap.Int("entities", sc.Entities().Len()),
			zap.Float64("player_x", pos.X),
			zap.Float64("player_y", pos.Y),
		)
	}
	return nil
}

// populate seeds the demo scene: a moving player with a weapon attached and
// a few short-lived projectiles.
func populate(sc *scene.Scene) {
	dir := sc.Entities()

	player := dir.Emplace("Player")
	player.AddTag("player")
	scene.AddComponent(player, component.Position{})
	scene.AddComponent(player, component.Velocity{DX: 1, DY: 0.5})
	scene.AddComponent(player, component.Health{HP: 100, MaxHP: 100})

	weapon, err := dir.EmplaceChild(player, "Weapon")
	if err != nil {
		panic(err)
	}
	scene.AddComponent(weapon, component.Position{})

	for i := 0; i < 3; i++ {
		p := dir.Emplace("Projectile")
		p.AddTag("projectile")
		scene.AddComponent(p, component.Position{X: float64(i)})
		scene.AddComponent(p, component.Velocity{DX: 5})
		scene.AddComponent(p, component.Lifetime{Remaining: 0.5 * float64(i+1)})
	}
}
