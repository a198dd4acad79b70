package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohinisarkar2002/EduAssist/internal/model"
)

func TestParseAgentDecisionJSON(t *testing.T) {
	output := `Here is my analysis:
{"decision": "AUTO_APPROVE", "reasoning": "good history", "policy_check": "no prior extensions"}`

	decision, reasoning, parsed := parseAgentDecision(output)

	assert.Equal(t, model.DecisionAutoApprove, decision)
	assert.Equal(t, "good history", reasoning)
	require.NotNil(t, parsed)
	assert.Equal(t, "no prior extensions", parsed.PolicyCheck)
}

func TestParseAgentDecisionJSONRejectVariants(t *testing.T) {
	decision, _, _ := parseAgentDecision(`{"decision": "REJECT", "reasoning": "no justification"}`)
	assert.Equal(t, model.DecisionReject, decision)

	// 模型偶尔会返回过去式
	decision, _, _ = parseAgentDecision(`{"decision": "REJECTED", "reasoning": "pattern of abuse"}`)
	assert.Equal(t, model.DecisionReject, decision)

	decision, _, _ = parseAgentDecision(`{"decision": "reject", "reasoning": "lowercase"}`)
	assert.Equal(t, model.DecisionReject, decision)
}

func TestParseAgentDecisionJSONUnknownDecisionIsManualReview(t *testing.T) {
	decision, _, parsed := parseAgentDecision(`{"decision": "ESCALATE", "reasoning": "unsure"}`)

	assert.Equal(t, model.DecisionManualReview, decision)
	require.NotNil(t, parsed)
}

func TestParseAgentDecisionRawTextFallback(t *testing.T) {
	decision, reasoning, parsed := parseAgentDecision("I recommend AUTO-APPROVE because the record is clean.")
	assert.Equal(t, model.DecisionAutoApprove, decision)
	assert.Contains(t, reasoning, "AUTO-APPROVE")
	assert.Nil(t, parsed)

	decision, _, _ = parseAgentDecision("This should be rejected due to missing justification.")
	assert.Equal(t, model.DecisionReject, decision)

	decision, _, _ = parseAgentDecision("I am not sure what to do here.")
	assert.Equal(t, model.DecisionManualReview, decision)
}

func TestDecisionToStatus(t *testing.T) {
	assert.Equal(t, model.WorkflowAutoApproved, decisionToStatus(model.DecisionAutoApprove))
	assert.Equal(t, model.WorkflowRejected, decisionToStatus(model.DecisionReject))
	assert.Equal(t, model.WorkflowInProgress, decisionToStatus(model.DecisionManualReview))
	assert.Equal(t, model.WorkflowInProgress, decisionToStatus(model.WorkflowDecision("anything else")))
}
