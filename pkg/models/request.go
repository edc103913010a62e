package models

// TriggerKind selects the trigger node that starts a generated workflow.
type TriggerKind string

const (
	TriggerWebhook  TriggerKind = "webhook"
	TriggerSchedule TriggerKind = "schedule"
	TriggerManual   TriggerKind = "manual"
)

// Complexity controls how many nodes a generated workflow should contain
// when no template dictates the structure.
type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

// NodeFloor returns the minimum node count for the complexity level,
// trigger included.
func (c Complexity) NodeFloor() int {
	switch c {
	case ComplexitySimple:
		return 2
	case ComplexityComplex:
		return 8
	default:
		return 4
	}
}

// NodeCeiling returns the maximum node count for the complexity level.
func (c Complexity) NodeCeiling() int {
	switch c {
	case ComplexitySimple:
		return 4
	case ComplexityComplex:
		return 15
	default:
		return 8
	}
}

// FeatureMatch maps each detected feature to its candidate node types, in
// preference order. It is produced by the detector and consumed by the
// matcher and synthesizer within one request.
type FeatureMatch map[string][]string

// Features returns the detected feature names. Order is unspecified.
func (m FeatureMatch) Features() []string {
	features := make([]string, 0, len(m))
	for feature := range m {
		features = append(features, feature)
	}

	return features
}

// NodeTypes returns the first candidate node type of every feature.
func (m FeatureMatch) NodeTypes() []string {
	types := make([]string, 0, len(m))

	for _, candidates := range m {
		if len(candidates) > 0 {
			types = append(types, candidates[0])
		}
	}

	return types
}

// Has reports whether the feature was detected.
func (m FeatureMatch) Has(feature string) bool {
	_, ok := m[feature]
	return ok
}
