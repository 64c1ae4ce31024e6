package log

import "time"

// Journal stamps and routes events for one component.
// A nil *Journal discards everything.
type Journal struct {
	logger    Logger
	component Component
	now       func() time.Time
}

// NewJournal returns a Journal writing to logger. A nil logger yields a
// Journal that discards events.
func NewJournal(logger Logger, component Component) *Journal {
	if logger == nil {
		logger = NoopLogger{}
	}
	return &Journal{logger: logger, component: component, now: time.Now}
}

func (j *Journal) emit(ev Event) {
	if j == nil {
		return
	}
	ev.Timestamp = j.now()
	ev.Component = j.component
	j.logger.Log(ev)
}

// Request records an accepted request.
func (j *Journal) Request(op string, handle int, deviceID, peerID string, req RequestEvent) {
	j.emit(Event{
		Category: CategoryRequest,
		Op:       op,
		Handle:   &handle,
		DeviceID: deviceID,
		PeerID:   peerID,
		Request:  &req,
	})
}

// Rejection records a request the SDK declined to issue.
func (j *Journal) Rejection(op, deviceID string, code int) {
	j.emit(Event{
		Category:  CategoryRejection,
		Op:        op,
		DeviceID:  deviceID,
		Rejection: &RejectionEvent{Code: code},
	})
}

// Completion records the outcome of an accepted request.
func (j *Journal) Completion(op string, handle int, deviceID string, c CompletionEvent) {
	j.emit(Event{
		Category:   CategoryCompletion,
		Op:         op,
		Handle:     &handle,
		DeviceID:   deviceID,
		Completion: &c,
	})
}

// Duplicate records a dropped second completion.
func (j *Journal) Duplicate(op string, handle int, deviceID string) {
	j.emit(Event{
		Category: CategoryDuplicate,
		Op:       op,
		Handle:   &handle,
		DeviceID: deviceID,
	})
}

// Registry records a registry transition.
func (j *Journal) Registry(deviceID string, r RegistryEvent) {
	j.emit(Event{
		Category: CategoryRegistry,
		DeviceID: deviceID,
		Registry: &r,
	})
}

// Error records a local error.
func (j *Journal) Error(op, deviceID string, err error) {
	if err == nil {
		return
	}
	j.emit(Event{
		Category: CategoryError,
		Op:       op,
		DeviceID: deviceID,
		Error:    &ErrorEventData{Message: err.Error(), Context: op},
	})
}
