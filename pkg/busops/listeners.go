package busops

import (
	"net/http"

	"github.com/JailtonJunior94/eventkit-go/pkg/events"
	"github.com/JailtonJunior94/eventkit-go/pkg/responses"
)

// listenersHandler serves a read-only snapshot of the multicaster's
// registrations: concrete listener types, registered provider names, and
// the number of memoized resolution keys. No listener instances leak
// through this endpoint.
func listenersHandler(multicaster events.Multicaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.JSON(w, http.StatusOK, multicaster.Snapshot())
	}
}
