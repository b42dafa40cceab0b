package agents

import (
	"context"
	"fmt"

	"tripcrew/internal/pipeline"
	"tripcrew/internal/tools"
)

var HotelAgent = Agent{
	Role: "Accommodation Search Specialist",
	Goal: "Find suitable accommodation options in {destination} across different neighborhoods and price ranges",
	Backstory: "You are a hospitality expert who knows the best neighborhoods in every major city. You look " +
		"for accommodations that offer great value and convenient locations, matching the traveler's budget.",
}

func HotelStage(hotels tools.HotelToolInterface, p TripParams) pipeline.Stage {
	location := firstNonEmpty(p.Codes.DestinationCityCode, p.Destination)

	return pipeline.Stage{
		Kind:   pipeline.StageHotel,
		System: HotelAgent.SystemPrompt(p.Destination),
		JSON:   true,
		Tool: func(ctx context.Context) string {
			return renderResult("hotel", hotels.Search(ctx, tools.HotelQuery{
				Location:     location,
				CheckInDate:  p.DepartureDate,
				CheckOutDate: p.ReturnDate,
			}))
		},
		Prompt: func(toolData string, _ pipeline.Upstream) string {
			return hotelPrompt(location, p.DepartureDate, p.ReturnDate, p.BudgetLevel, toolData)
		},
	}
}

func hotelPrompt(location, checkIn, checkOut, budgetLevel, toolData string) string {
	return fmt.Sprintf(`Recommend hotel options in %[1]s.

Search parameters:
- location: %[1]s
- check_in_date: %[2]s
- check_out_date: %[3]s

Hotel search results:
%[5]s

Using the hotel data:
1. Identify 3-5 representative hotel options across different areas
2. Note the neighborhoods/districts
3. Highlight price ranges per night
4. Consider the %[4]s budget level

Respond with a single JSON object in this format:
{
    "destination": "%[1]s",
    "hotels": [
        {
            "name": "hotel name",
            "rating": "rating",
            "price_per_night": float,
            "total_price": float,
            "currency": "SGD",
            "area": "neighborhood"
        }
    ],
    "price_range": {"min_per_night": float, "max_per_night": float},
    "recommended_areas": ["area1", "area2"],
    "notes": "neighborhood descriptions and recommendations"
}`, location, checkIn, checkOut, budgetLevel, toolData)
}
