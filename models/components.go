// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Marek Stepanek

package models

// Canonical top-level component keys of the dialogue pipeline. The bootstrap
// collaborator reads these keys from the resolved tree and instantiates each
// stage from its variant settings.
const (
	ComponentTransport     = "transport"
	ComponentRecognition   = "recognition"
	ComponentUnderstanding = "understanding"
	ComponentState         = "state"
	ComponentPolicy        = "policy"
	ComponentGeneration    = "generation"
	ComponentSynthesis     = "synthesis"
)

// ComponentKeys lists the canonical pipeline stage keys in pipeline order.
func ComponentKeys() []string {
	return []string{
		ComponentTransport,
		ComponentRecognition,
		ComponentUnderstanding,
		ComponentState,
		ComponentPolicy,
		ComponentGeneration,
		ComponentSynthesis,
	}
}
