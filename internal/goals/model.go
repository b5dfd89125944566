package goals

type createGoalRequest struct {
	Goal string `json:"goal"`
}

// updateGoalRequest uses a pointer so an absent field is distinguishable from
// an empty one; both leave the stored text unchanged.
type updateGoalRequest struct {
	Goal *string `json:"goal"`
}

type deleteGoalResponse struct {
	Message string `json:"message"`
}
