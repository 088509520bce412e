package preference

type UserPreference struct {
	CurrentSubject string `json:"currentSubject"`
}

type UpdateRequest struct {
	CurrentSubject *string `json:"currentSubject"`
}
