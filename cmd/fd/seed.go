package main

import (
	"context"
	"fmt"

	"github.com/lobbylab/frontdesk/internal/client"
	"github.com/spf13/cobra"
)

// sampleRequests is a realistic batch of hotel guest requests spanning every
// department, for demos and local testing.
var sampleRequests = []client.CreateRequestItem{
	// Room service
	{Title: "Room 412 - Breakfast order 45 minutes late", Description: "Guest called twice already. Ordered continental breakfast at 7:15am, still hasn't arrived. Guest has a meeting at 8:30am and is getting upset."},
	{Title: "Room 718 - Wrong dinner order delivered", Description: "Ordered the grilled salmon, received chicken parmesan instead. Guest has a fish allergy concern with the replacement - wants fresh salmon, not the one that's been sitting."},
	{Title: "Room 305 - Cold room service food", Description: "Steak arrived cold after 30 min wait. Guest is a diamond member and this is the second issue this stay. Would like a replacement and considering asking for comp."},
	{Title: "Room 622 - Dietary restriction ignored", Description: "Ordered gluten-free pasta, received regular pasta. Guest has celiac disease. Very concerned about cross-contamination. Needs manager callback."},
	{Title: "Room 801 - Minibar charge dispute", Description: "Guest claims they didn't consume the $18 snack items showing on their bill. Says the minibar was already partially empty on check-in. Wants charges removed."},

	// Maintenance
	{Title: "Room 1502 - AC not working, VIP suite", Description: "Presidential suite AC blowing warm air only. Outside temp is 95F. Guest is CEO hosting board dinner in suite tonight at 7pm. URGENT - needs immediate attention."},
	{Title: "Room 234 - Toilet won't stop running", Description: "Toilet has been running constantly since last night. Guest couldn't sleep due to noise. Water bill concern as well. Please send plumber."},
	{Title: "Room 567 - Power outlet sparking", Description: "Guest reports the outlet near the desk sparked when they plugged in laptop. Smell of burning. Safety concern - please send electrician immediately."},
	{Title: "Room 890 - Broken desk chair", Description: "Office chair wheel broke off, guest almost fell. Business traveler needs to work from room. Requesting replacement chair ASAP."},
	{Title: "Room 445 - TV not working", Description: "Smart TV stuck on loading screen, won't connect to any apps or cable. Guest wanted to watch the game tonight. Tried unplugging already."},

	// Housekeeping
	{Title: "Room 333 - Room not cleaned today", Description: "Guest returned at 4pm, room hasn't been serviced. Dirty towels still on floor, bed unmade, trash not emptied. DND sign was NOT on door."},
	{Title: "Room 712 - Need extra towels and pillows", Description: "Family of 4, need 4 extra bath towels and 2 extra pillows. Also requesting hypoallergenic pillow covers if available."},
	{Title: "Room 205 - Early cleaning request", Description: "Guest leaving for all-day excursion at 8am, would like room cleaned by 9am so it's fresh when they return at 6pm. Willing to tip."},
	{Title: "Room 908 - Lost item inquiry", Description: "Guest checked out yesterday, believes they left a gold watch in the nightstand drawer. Very sentimental value. Can someone check lost and found?"},

	// Front desk
	{Title: "Room 401 - Late checkout request", Description: "Flight doesn't leave until 8pm, requesting 4pm late checkout instead of standard 11am. Platinum member, 5th stay this year."},
	{Title: "Room 156 - Room change request", Description: "Current room faces the parking lot and highway, too noisy to sleep. Requesting move to courtyard or pool view. Willing to pay upgrade fee if needed."},
	{Title: "Room 678 - Billing discrepancy", Description: "Final bill shows 4 nights but guest only stayed 3. Also seeing a $50 resort fee that wasn't mentioned at booking. Needs itemized review."},
	{Title: "Room 289 - Key card not working", Description: "Key card demagnetized for third time this stay. Guest is frustrated with multiple trips to front desk. Requesting room re-keyed entirely."},

	// Concierge
	{Title: "Room 1201 - Restaurant reservation needed", Description: "Anniversary dinner tonight, looking for upscale Italian within walking distance. Party of 2 at 7:30pm. Preference for quiet table, maybe window."},
	{Title: "Room 503 - Airport transportation", Description: "Need car service to airport tomorrow 5:30am. International terminal, flight at 8:15am. 2 passengers, 3 large bags. Prefer black car over shuttle."},
	{Title: "Room 777 - Local attractions help", Description: "Family with kids ages 8 and 12, here for 3 days. Looking for recommendations - museums, outdoor activities, good lunch spots. Not too touristy."},

	// Noise complaints
	{Title: "Room 420 - Loud neighbors", Description: "Room 422 has been loud since 11pm, sounds like a party. Multiple people talking loudly, music playing. Guest has early flight, can't sleep."},
	{Title: "Room 602 - Construction noise", Description: "Drilling and hammering started at 7am, still going. Guest works night shift, this is their sleep time. How long will construction continue?"},

	// Amenities
	{Title: "Room 345 - Pool access issue", Description: "Pool gate keypad not accepting room number. Tried multiple times with correct code. Kids are disappointed, hot day outside."},
	{Title: "Room 912 - Spa booking problem", Description: "Booked couples massage for 2pm online, but spa says no record of reservation. Confirmation email attached. This was an anniversary surprise."},
	{Title: "Room 234 - WiFi not working", Description: "Internet keeps dropping every few minutes. Guest is remote worker, has important video call in 1 hour. Tried reconnecting, restarting devices."},

	// VIP and accessibility
	{Title: "Room 1405 - VIP early arrival", Description: "Board chairman arriving at 10am, flight landed early. Standard check-in is 3pm. Suite needs to be ready. Champagne and fruit basket requested."},
	{Title: "Room 188 - Accessibility request", Description: "Guest's mobility scooter battery died. Need outlet near entrance to charge, or assistance getting to room. Currently stuck in lobby."},
}

var seedCmd = &cobra.Command{
	Use:     "seed",
	Short:   "Populate the service with sample guest requests",
	GroupID: "requests",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := fdClient.CreateRequests(context.Background(), &client.CreateRequestsRequest{
			Requests: sampleRequests,
		})
		if err != nil {
			return fmt.Errorf("seeding requests: %w", err)
		}

		if jsonOutput {
			printJSON(created)
			return nil
		}
		for _, r := range created {
			fmt.Printf("%s  %s\n", r.ID, r.Title)
		}
		fmt.Printf("\n%d requests created\n", len(created))
		return nil
	},
}
