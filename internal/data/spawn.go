package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Spawn places one character when the session starts.
type Spawn struct {
	Model    string     `yaml:"model"`
	Player   bool       `yaml:"player"`
	Position [3]float64 `yaml:"position"`
	Yaw      float64    `yaml:"yaw"`
}

type spawnFile struct {
	Spawns []Spawn `yaml:"spawns"`
}

// LoadSpawnList loads spawn_list.yaml. Exactly one entry must be the player.
func LoadSpawnList(path string) ([]Spawn, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn list: %w", err)
	}
	spawns, err := ParseSpawnList(raw)
	if err != nil {
		return nil, fmt.Errorf("parse spawn list %s: %w", path, err)
	}
	return spawns, nil
}

func ParseSpawnList(raw []byte) ([]Spawn, error) {
	var f spawnFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	players := 0
	for _, s := range f.Spawns {
		if s.Player {
			players++
		}
	}
	if players != 1 {
		return nil, fmt.Errorf("want exactly one player spawn, got %d", players)
	}
	return f.Spawns, nil
}
