// Package forest evaluates a tree-ensemble classifier exported by the offline
// training job. Training happens elsewhere; this package only loads and predicts.
package forest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Format is the artifact format identifier this package understands.
const Format = "tree-ensemble/v1"

// Node is one entry of a pre-order flattened decision tree.
type Node struct {
	FeatureIdx int       `json:"feature_idx"`
	Threshold  float64   `json:"threshold"`
	LeftChild  int       `json:"left_child"`
	RightChild int       `json:"right_child"`
	IsLeaf     bool      `json:"is_leaf"`
	Value      []float64 `json:"value,omitempty"` // per-class sample counts, leaves only
}

// Tree is a single decision tree.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// artifact is the on-disk JSON layout.
type artifact struct {
	Format       string   `json:"format"`
	NFeatures    int      `json:"n_features"`
	FeatureNames []string `json:"feature_names,omitempty"`
	Classes      []int    `json:"classes"`
	Trees        []Tree   `json:"trees"`
}

// Forest is a loaded ensemble. It is immutable and safe for concurrent use.
type Forest struct {
	nFeatures    int
	featureNames []string
	classes      []int
	trees        []Tree
}

// Load reads and validates an artifact from path.
func Load(path string) (*Forest, error) {
	payload, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	f, err := Parse(payload)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates an artifact.
func Parse(payload []byte) (*Forest, error) {
	var a artifact
	if err := json.Unmarshal(payload, &a); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return &Forest{
		nFeatures:    a.NFeatures,
		featureNames: a.FeatureNames,
		classes:      a.Classes,
		trees:        a.Trees,
	}, nil
}

func (a *artifact) validate() error {
	if a.Format != Format {
		return fmt.Errorf("unsupported format %q, want %q", a.Format, Format)
	}
	if a.NFeatures <= 0 {
		return errors.New("n_features must be positive")
	}
	if len(a.FeatureNames) > 0 && len(a.FeatureNames) != a.NFeatures {
		return fmt.Errorf("feature_names has %d entries, n_features is %d", len(a.FeatureNames), a.NFeatures)
	}
	if len(a.Classes) < 2 {
		return fmt.Errorf("need at least 2 classes, got %d", len(a.Classes))
	}
	if len(a.Trees) == 0 {
		return errors.New("no trees")
	}
	for ti, t := range a.Trees {
		if err := validateTree(t, a.NFeatures, len(a.Classes)); err != nil {
			return fmt.Errorf("tree %d: %w", ti, err)
		}
	}
	return nil
}

func validateTree(t Tree, nFeatures, nClasses int) error {
	if len(t.Nodes) == 0 {
		return errors.New("empty tree")
	}
	for i, n := range t.Nodes {
		if n.IsLeaf {
			if len(n.Value) != nClasses {
				return fmt.Errorf("node %d: leaf has %d values, want %d", i, len(n.Value), nClasses)
			}
			var total float64
			for _, v := range n.Value {
				if v < 0 {
					return fmt.Errorf("node %d: negative leaf value", i)
				}
				total += v
			}
			if total == 0 {
				return fmt.Errorf("node %d: leaf has no samples", i)
			}
			continue
		}
		if n.FeatureIdx < 0 || n.FeatureIdx >= nFeatures {
			return fmt.Errorf("node %d: feature index %d out of range", i, n.FeatureIdx)
		}
		// Children always follow their parent in pre-order, which also rules out cycles.
		if n.LeftChild <= i || n.LeftChild >= len(t.Nodes) {
			return fmt.Errorf("node %d: invalid left child %d", i, n.LeftChild)
		}
		if n.RightChild <= i || n.RightChild >= len(t.Nodes) {
			return fmt.Errorf("node %d: invalid right child %d", i, n.RightChild)
		}
	}
	return nil
}

// NFeatures returns the input width the model was trained on.
func (f *Forest) NFeatures() int { return f.nFeatures }

// FeatureNames returns the training feature order, if the artifact recorded it.
func (f *Forest) FeatureNames() []string { return f.featureNames }

// Classes returns the class ids in probability order.
func (f *Forest) Classes() []int { return f.classes }

// NumTrees returns the ensemble size.
func (f *Forest) NumTrees() int { return len(f.trees) }

// PredictProba returns the mean class distribution across all trees.
func (f *Forest) PredictProba(x []float64) ([]float64, error) {
	if len(x) != f.nFeatures {
		return nil, fmt.Errorf("got %d features, model expects %d", len(x), f.nFeatures)
	}
	proba := make([]float64, len(f.classes))
	for _, t := range f.trees {
		leaf := t.leaf(x)
		var total float64
		for _, v := range leaf.Value {
			total += v
		}
		for c, v := range leaf.Value {
			proba[c] += v / total
		}
	}
	n := float64(len(f.trees))
	for c := range proba {
		proba[c] /= n
	}
	return proba, nil
}

// Predict returns the class with the highest mean probability.
// Ties resolve to the class listed first.
func (f *Forest) Predict(x []float64) (int, error) {
	proba, err := f.PredictProba(x)
	if err != nil {
		return 0, err
	}
	best := 0
	for c := 1; c < len(proba); c++ {
		if proba[c] > proba[best] {
			best = c
		}
	}
	return f.classes[best], nil
}

func (t Tree) leaf(x []float64) Node {
	idx := 0
	for {
		n := t.Nodes[idx]
		if n.IsLeaf {
			return n
		}
		if x[n.FeatureIdx] <= n.Threshold {
			idx = n.LeftChild
		} else {
			idx = n.RightChild
		}
	}
}
