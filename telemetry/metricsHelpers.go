package telemetry

// Increments the rental success counter and the open-rental gauge.
func IncRentalsCreated() {
	rentalsCreatedTotal.Inc()
	rentalsOpenCurrent.Inc()
}

// Increments the failed-create counter with a bounded reason.
// Reasons: "validation", "not_found", "out_of_stock", "db".
func IncRentalsCreateFailed(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	rentalsCreateFailedTotal.WithLabelValues(reason).Inc()
}

// Increments the return counter and closes out one open rental.
func IncRentalsReturned() {
	rentalsReturnedTotal.Inc()
	rentalsOpenCurrent.Dec()
}

// Deleting is only allowed while a rental is open, so the gauge drops.
func IncRentalsDeleted() {
	rentalsOpenCurrent.Dec()
}

// Adds one charged delay fee to the running total.
func AddDelayFeesCharged(fee int) {
	delayFeesChargedTotal.Add(float64(fee))
}

func IncCategoriesCreated() {
	categoriesCreatedTotal.Inc()
}

func IncGamesCreated() {
	gamesCreatedTotal.Inc()
}

func IncCustomersCreated() {
	customersCreatedTotal.Inc()
}

func IncEventsPublished() {
	eventsPublishedTotal.Inc()
}

// Reasons: "schema", "kafka", "queue_full".
func IncEventsFailed(reason string) {
	eventsFailedTotal.WithLabelValues(reason).Inc()
}

// Sets the current event queue size gauge.
func SetEventQueueCurrent(n int) {
	eventQueueCurrent.Set(float64(n))
}
