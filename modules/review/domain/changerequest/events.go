package changerequest

type CreatedEvent struct {
	Request *ChangeRequest
}

type DecidedEvent struct {
	Request *ChangeRequest
}
