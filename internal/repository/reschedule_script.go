package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/bonk1990/gydytojas/internal/converter"
	"github.com/bonk1990/gydytojas/internal/delivery/dto"
	"github.com/bonk1990/gydytojas/internal/domain/entity"
)

// The colliding-appointment list is not part of any API response; the
// portal embeds it as a javascript object literal in the booking process
// page. This is the narrow parser boundary for that payload: anything that
// does not match the expected shape is a hard error, never a best-effort
// guess.

// Provider-side variable name, including the provider's spelling.
const rescheduleScriptMarker = "var resheduleAppointment"

var (
	ErrNoSchedulePayload        = errors.New("booking page reports a conflict but carries no reschedule payload")
	ErrMalformedSchedulePayload = errors.New("unrecognized reschedule payload in booking page")
)

var scriptPairRe = regexp.MustCompile(`(?i)([a-z]+):\s*'(.*)'\s*[,}]`)

// parseRescheduleScript extracts the target slot id and the colliding
// appointments from the script element's text.
func parseRescheduleScript(script string) (string, []entity.ConflictCandidate, error) {
	pairs := map[string]string{}
	for _, m := range scriptPairRe.FindAllStringSubmatch(script, -1) {
		pairs[m[1]] = m[2]
	}

	slotRaw, ok := pairs["slotId"]
	if !ok {
		return "", nil, fmt.Errorf("%w: missing slotId", ErrMalformedSchedulePayload)
	}
	apptsRaw, ok := pairs["appointments"]
	if !ok {
		return "", nil, fmt.Errorf("%w: missing appointments", ErrMalformedSchedulePayload)
	}

	var slotID json.Number
	if err := json.Unmarshal([]byte(slotRaw), &slotID); err != nil {
		return "", nil, fmt.Errorf("%w: bad slotId %q", ErrMalformedSchedulePayload, slotRaw)
	}

	var appts []dto.RescheduleAppointment
	if err := json.Unmarshal([]byte(apptsRaw), &appts); err != nil {
		return "", nil, fmt.Errorf("%w: bad appointments list", ErrMalformedSchedulePayload)
	}

	collisions := make([]entity.ConflictCandidate, 0, len(appts))
	for _, appt := range appts {
		collision, err := converter.AppointmentToConflict(appt)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrMalformedSchedulePayload, err)
		}
		collisions = append(collisions, collision)
	}
	return slotID.String(), collisions, nil
}
