package xgboost

import (
	"os"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/churninsights/churn-insights-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrInvalidArtifact = errors.New("invalid model artifact")
	ErrVectorLength    = errors.New("feature vector length does not match model schema")
)

const (
	defaultBaseScore = 0.5
	defaultThreshold = 0.5
	binaryLogistic   = "binary:logistic"
)

// artifact é o formato em disco: schema + metadados + árvores no formato
// do dump JSON do XGBoost (com_stats, para termos o cover de cada nó).
type artifact struct {
	ModelVersion       string               `json:"model_version"`
	Objective          string               `json:"objective"`
	Schema             domain.FeatureSchema `json:"schema"`
	BaseScore          *float64             `json:"base_score"`
	Threshold          *float64             `json:"threshold"`
	FeatureImportances []float64            `json:"feature_importances"`
	Trees              []dumpNode           `json:"trees"`
}

type dumpNode struct {
	NodeID         int        `json:"nodeid"`
	Split          string     `json:"split"`
	SplitCondition float64    `json:"split_condition"`
	Yes            int        `json:"yes"`
	No             int        `json:"no"`
	Missing        int        `json:"missing"`
	Leaf           *float64   `json:"leaf"`
	Cover          float64    `json:"cover"`
	Children       []dumpNode `json:"children"`
}

// Load lê e valida o artefato do modelo
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading model artifact %s", path)
	}

	model, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading model artifact %s", path)
	}

	return model, nil
}

func Parse(data []byte) (*Model, error) {
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, errors.Wrap(ErrInvalidArtifact, err.Error())
	}

	return compile(a)
}

func compile(a artifact) (*Model, error) {
	if a.Objective != "" && a.Objective != binaryLogistic {
		return nil, errors.Wrapf(ErrInvalidArtifact, "unsupported objective %q", a.Objective)
	}

	nFeatures := a.Schema.Len()
	if nFeatures == 0 {
		return nil, errors.Wrap(ErrInvalidArtifact, "schema has no features")
	}

	featureIndex := make(map[string]int, nFeatures)
	for i, name := range a.Schema.Features {
		if _, dup := featureIndex[name]; dup {
			return nil, errors.Wrapf(ErrInvalidArtifact, "duplicated feature %q in schema", name)
		}
		featureIndex[name] = i
	}

	if len(a.FeatureImportances) != nFeatures {
		return nil, errors.Wrapf(ErrInvalidArtifact, "schema has %d features but %d importances", nFeatures, len(a.FeatureImportances))
	}

	baseScore := defaultBaseScore
	if a.BaseScore != nil {
		baseScore = *a.BaseScore
	}
	if baseScore <= 0 || baseScore >= 1 {
		return nil, errors.Wrapf(ErrInvalidArtifact, "base_score %v outside (0, 1)", baseScore)
	}

	threshold := defaultThreshold
	if a.Threshold != nil {
		threshold = *a.Threshold
	}
	if threshold < 0 || threshold > 1 {
		return nil, errors.Wrapf(ErrInvalidArtifact, "threshold %v outside [0, 1]", threshold)
	}

	if len(a.Trees) == 0 {
		return nil, errors.Wrap(ErrInvalidArtifact, "artifact has no trees")
	}

	trees := make([]*tree, 0, len(a.Trees))
	for i, root := range a.Trees {
		t, err := compileTree(root, featureIndex)
		if err != nil {
			return nil, errors.Wrapf(err, "tree %d", i)
		}
		trees = append(trees, t)
	}

	version := a.ModelVersion
	if version == "" {
		version = a.Schema.Version
	}

	importances := make([]float64, nFeatures)
	copy(importances, a.FeatureImportances)

	m := &Model{
		version:     version,
		schema:      a.Schema,
		baseMargin:  logit(baseScore),
		threshold:   threshold,
		importances: importances,
		trees:       trees,
	}
	m.expectedValue = m.baseMargin
	for _, t := range trees {
		m.expectedValue += t.meanValue(0)
	}

	return m, nil
}

func compileTree(root dumpNode, featureIndex map[string]int) (*tree, error) {
	flat := map[int]dumpNode{}
	if err := flatten(root, flat); err != nil {
		return nil, err
	}

	nodes := make([]node, len(flat))
	for id, dn := range flat {
		if id < 0 || id >= len(flat) {
			return nil, errors.Wrapf(ErrInvalidArtifact, "node ids must be contiguous from 0, got %d", id)
		}

		if dn.Leaf != nil {
			nodes[id] = node{isLeaf: true, leaf: *dn.Leaf, cover: dn.Cover}
			continue
		}

		feature, err := resolveFeature(dn.Split, featureIndex)
		if err != nil {
			return nil, err
		}

		if !hasChild(dn, dn.Yes) || !hasChild(dn, dn.No) || dn.Yes == dn.No {
			return nil, errors.Wrapf(ErrInvalidArtifact, "node %d: yes/no must be its two children", id)
		}
		if dn.Missing != dn.Yes && dn.Missing != dn.No {
			return nil, errors.Wrapf(ErrInvalidArtifact, "node %d: missing branch must be yes or no", id)
		}
		if dn.Cover <= 0 {
			return nil, errors.Wrapf(ErrInvalidArtifact, "node %d: cover is required for attributions", id)
		}

		nodes[id] = node{
			feature:   feature,
			threshold: float32(dn.SplitCondition),
			yes:       dn.Yes,
			no:        dn.No,
			missing:   dn.Missing,
			cover:     dn.Cover,
		}
	}

	if root.NodeID != 0 {
		return nil, errors.Wrapf(ErrInvalidArtifact, "root node id must be 0, got %d", root.NodeID)
	}

	return &tree{nodes: nodes}, nil
}

func flatten(n dumpNode, into map[int]dumpNode) error {
	if _, dup := into[n.NodeID]; dup {
		return errors.Wrapf(ErrInvalidArtifact, "duplicated node id %d", n.NodeID)
	}
	into[n.NodeID] = n

	if n.Leaf != nil {
		if len(n.Children) > 0 {
			return errors.Wrapf(ErrInvalidArtifact, "leaf %d has children", n.NodeID)
		}
		return nil
	}

	if len(n.Children) != 2 {
		return errors.Wrapf(ErrInvalidArtifact, "split node %d must have two children", n.NodeID)
	}

	for _, child := range n.Children {
		if err := flatten(child, into); err != nil {
			return err
		}
	}

	return nil
}

func hasChild(n dumpNode, id int) bool {
	for _, c := range n.Children {
		if c.NodeID == id {
			return true
		}
	}
	return false
}

// resolveFeature aceita o nome da coluna ou o formato "fN" do XGBoost sem feature_names
func resolveFeature(split string, featureIndex map[string]int) (int, error) {
	if i, ok := featureIndex[split]; ok {
		return i, nil
	}

	if strings.HasPrefix(split, "f") {
		if i, err := strconv.Atoi(split[1:]); err == nil && i >= 0 && i < len(featureIndex) {
			return i, nil
		}
	}

	return 0, errors.Wrapf(ErrInvalidArtifact, "split feature %q is not in the schema", split)
}
