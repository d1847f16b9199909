package request

type StartWizardRequest struct {
	ScheduleID string  `json:"schedule_id" validate:"required,uuid4"`
	Price      float64 `json:"price" validate:"required,gt=0"`
}

type UpdatePassengerRequest struct {
	Field string `json:"field" validate:"required,oneof=name age gender"`
	Value string `json:"value"`
}
