package coach

import "fmt"

// Snapshot is the slice of a daily log the coach rules read. Burned and
// Consumed are the derived totals; Hour is injected by the caller so the
// time-of-day rules stay testable.
type Snapshot struct {
	Consumed      int
	Burned        int
	Target        int
	Water         float64
	Steps         int
	IsPeriod      bool
	IsSick        bool
	SickNotes     string
	SugarCravings string
}

// Feedback walks a priority-ordered decision table and returns the first
// matching message. Pure function: recomputed from the latest log on every
// request, nothing persisted.
func Feedback(snap Snapshot, user string, hour int) string {
	// 1. Sickness overrides everything, including cycle messages.
	if snap.IsSick {
		if snap.SickNotes != "" {
			return fmt.Sprintf("Rest is productive too, %s. You noted \"%s\" — keep meals warm and light, hydrate often, and let recovery be today's only goal.", user, snap.SickNotes)
		}
		return fmt.Sprintf("Rest is productive too, %s. Keep meals warm and light, hydrate often, and let recovery be today's only goal.", user)
	}

	// 2. Cycle-aware support.
	if snap.IsPeriod {
		msg := fmt.Sprintf("Be extra gentle with yourself today, %s. Iron-rich foods like dal, greens, or dates will help your energy.", user)
		if snap.SugarCravings == "High" || snap.SugarCravings == "Medium" {
			msg += " Cravings are your body asking for comfort — a square of dark chocolate beats fighting it all day."
		}
		return msg
	}

	// 3. Afternoon hydration nudge.
	if snap.Water < 1.5 && hour > 14 {
		return fmt.Sprintf("You're at %.1fL of water and the day is more than half over. A glass now and one every hour keeps the headaches away.", snap.Water)
	}

	// 4. Nothing logged yet.
	if snap.Consumed == 0 {
		return fmt.Sprintf("Ready for a fresh start, %s? Let's focus on a high-protein first meal to keep your energy steady today. No pressure, just one good choice at a time.", user)
	}

	// 5. Energy balance bands.
	net := snap.Consumed - snap.Burned
	diff := net - snap.Target
	if diff < -500 && snap.Steps > 8000 {
		return "You've moved a lot on very little fuel today. Big deficits plus big step counts backfire — add a protein-rich snack like Greek yogurt or a few nuts."
	}
	if diff >= -200 && diff <= 200 {
		return "Beautifully balanced. You're in that zone where your body feels safe to release fat while keeping your hormones happy. Keep this rhythm!"
	}
	if diff > 300 {
		return "A bit of a surplus today? Don't sweat it. One day doesn't define your journey — consistency does. A gentle 20-minute walk and back to baseline tomorrow."
	}

	// 6. Evening movement nudge.
	if snap.Steps < 3000 && hour > 17 {
		return "The day's winding down and your legs have barely been out. A short evening walk settles dinner and the mind alike."
	}

	// 7. Fallback.
	return fmt.Sprintf("Steady as she goes, %s. Small consistent choices are quietly adding up — keep showing up for yourself.", user)
}
