package cli

import (
	"io"

	"github.com/bonk1990/gydytojas/internal/domain/entity"

	"github.com/olekukonko/tablewriter"
)

const tableDateFormat = "2006-01-02 15:04"

// renderVisits writes the deduplicated visit tuples as a table.
func renderVisits(w io.Writer, keys []entity.VisitKey) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Date", "Specialization", "Doctor", "Clinic"})
	table.SetBorder(false)
	for _, key := range keys {
		table.Append([]string{
			key.Date.Format(tableDateFormat),
			key.Specialization,
			key.Doctor,
			key.Clinic,
		})
	}
	table.Render()
}

// renderCollisions writes the colliding appointments found while booking.
func renderCollisions(w io.Writer, collisions []entity.ConflictCandidate) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Date", "Specialization", "Doctor", "Clinic"})
	table.SetBorder(false)
	for _, collision := range collisions {
		table.Append([]string{
			collision.Date.Format(tableDateFormat),
			collision.Specialization,
			collision.Doctor,
			collision.Clinic,
		})
	}
	table.Render()
}
