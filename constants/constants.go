package constants

const (
	ResourceNotFound    = "{\"message\":\"We couldn't find this resource anywhere!\",\"error\":true}"
	NotFoundPage        = "{\"message\":\"This endpoint doesn't exist!\",\"error\":true}"
	BadRequest          = "{\"message\":\"The request was malformed or otherwise invalid!\",\"error\":true}"
	Forbidden           = "{\"message\":\"You're not allowed to do this!\",\"error\":true}"
	Unauthorized        = "{\"message\":\"You're not authorized to do this. Did you forget an API token somewhere?\",\"error\":true}"
	InternalServerError = "{\"message\":\"Something went wrong on our end!\",\"error\":true}"
	MethodNotAllowed    = "{\"message\":\"That method is not allowed for this endpoint!\",\"error\":true}"
	BodyRequired        = "{\"message\":\"This endpoint requires a request body!\",\"error\":true}"
	Success             = "{\"message\":\"Success!\",\"error\":false}"
	TestNotif           = "{\"tag\":\"test\",\"title\":\"Test notification\",\"message\":\"Notifications are working!\",\"urgency\":\"normal\",\"require_interaction\":false,\"actions\":[]}"
)
