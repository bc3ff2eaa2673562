package config

import "github.com/spf13/viper"

const (
	modelTreesKey = "model_trees"
	modelSeedKey  = "model_seed"
)

type ModelConfig interface {
	GetModelTrees() int
	GetModelSeed() uint64
}

type Model struct {
	v *viper.Viper
}

var _ ModelConfig = Model{}

// GetModelTrees returns the number of trees in the dropout forest.
func (m Model) GetModelTrees() int {
	return m.v.GetInt(modelTreesKey)
}

// GetModelSeed seeds the forest's bootstrap sampling so fits are reproducible.
func (m Model) GetModelSeed() uint64 {
	return m.v.GetUint64(modelSeedKey)
}
