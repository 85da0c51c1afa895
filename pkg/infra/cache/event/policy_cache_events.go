package event

type UpdatePolicyCacheEvent struct {
	PolicyID string `json:"policy_id"`
}

func (e UpdatePolicyCacheEvent) Type() string {
	return UpdatePolicyCacheEventType
}

type DeletePolicyCacheEvent struct {
	PolicyID string `json:"policy_id"`
}

func (e DeletePolicyCacheEvent) Type() string {
	return DeletePolicyCacheEventType
}
