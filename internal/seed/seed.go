// Package seed loads the demo dataset into an empty store: six profiles,
// two established matches with a few messages, and three date ideas.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/nrattyp233/create-a-date1/internal/domain/enums"
	"github.com/nrattyp233/create-a-date1/internal/domain/model"
	"github.com/nrattyp233/create-a-date1/internal/store"
)

func demoUsers(now time.Time) []model.User {
	return []model.User{
		{
			ID: 0, Name: "Riley", Age: 26, Vibe: "Curious & Kind",
			Bio:       "Tech enthusiast who enjoys weekend getaways and trying new recipes. I'm always down for a good conversation over coffee or a competitive board game night.",
			Photos:    []string{"https://picsum.photos/id/1005/800/1200", "https://picsum.photos/id/1006/800/1200", "https://picsum.photos/id/1008/800/1200"},
			Interests: []string{"Technology", "Board Games", "Cooking", "Travel", "Documentaries"},
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: 1, Name: "Alex", Age: 28, Vibe: "Creative Explorer",
			Bio:       "Adventurous spirit with a love for spicy food and indie films. Looking for someone to join me on my next quest, whether it's finding the best tacos in town or hiking a new trail.",
			Photos:    []string{"https://picsum.photos/id/1011/800/1200", "https://picsum.photos/id/1012/800/1200", "https://picsum.photos/id/1013/800/1200"},
			Interests: []string{"Hiking", "Indie Films", "Photography", "Cooking", "Live Music"},
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: 2, Name: "Brenda", Age: 25, Vibe: "Witty & Ambitious",
			Bio:       "Software engineer by day, aspiring pastry chef by night. My love language is freshly baked croissants. Let's talk about code, cats, or conspiracy theories.",
			Photos:    []string{"https://picsum.photos/id/1027/800/1200", "https://picsum.photos/id/1028/800/1200", "https://picsum.photos/id/1029/800/1200"},
			Interests: []string{"Baking", "Cats", "Tech", "Board Games", "Podcasts"},
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: 3, Name: "Carlos", Age: 31, Vibe: "Chill Musician",
			Bio:       "Just a guy who loves his dog, playing guitar, and long walks on the beach (seriously). Trying to find someone who doesn't mind my terrible singing.",
			Photos:    []string{"https://picsum.photos/id/1041/800/1200", "https://picsum.photos/id/1042/800/1200", "https://picsum.photos/id/1043/800/1200"},
			Interests: []string{"Guitar", "Dogs", "Beach Trips", "Craft Beer", "Comedy Shows"},
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: 4, Name: "Diana", Age: 29, Vibe: "Artistic Globetrotter",
			Bio:       "Graphic designer with an eye for aesthetics and a heart for travel. I'm probably planning my next trip right now. Fluent in sarcasm and coffee.",
			Photos:    []string{"https://picsum.photos/id/1062/800/1200", "https://picsum.photos/id/1063/800/1200", "https://picsum.photos/id/1065/800/1200"},
			Interests: []string{"Travel", "Art Museums", "Graphic Design", "Coffee Shops", "Yoga"},
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: 5, Name: "Ethan", Age: 27, Vibe: "Energetic & Motivated",
			Bio:       "Fitness enthusiast and personal trainer. I believe a healthy body leads to a healthy mind. Looking for a workout partner and a partner in crime.",
			Photos:    []string{"https://picsum.photos/id/1074/800/1200", "https://picsum.photos/id/1075/800/1200", "https://picsum.photos/id/1076/800/1200"},
			Interests: []string{"Weightlifting", "Running", "Meal Prep", "Action Movies", "Reading"},
			CreatedAt: now, UpdatedAt: now,
		},
	}
}

type starterMessage struct {
	senderID int64
	text     string
}

// SeedIfEmpty populates the store once. A store that already holds users is
// left untouched.
func SeedIfEmpty(ctx context.Context, st store.Store) error {
	existing, err := st.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("check existing users: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC()

	return st.Mutate(ctx, func(txCtx context.Context, tx store.Tx) error {
		for _, u := range demoUsers(now) {
			if _, err := tx.CreateUser(txCtx, u); err != nil {
				return fmt.Errorf("seed user %s: %w", u.Name, err)
			}
		}

		type matchSeed struct {
			userA, userB int64
			messages     []starterMessage
		}
		matchSeeds := []matchSeed{
			{
				userA: 0, userB: 1,
				messages: []starterMessage{
					{1, "Hey! Loved your profile, especially the part about indie films. Seen anything good lately?"},
					{0, "Hey Alex! Thanks :) I just saw 'Past Lives' and it was amazing. You?"},
					{1, "Oh, I've been wanting to see that! I'm adding it to my list. I recently watched 'Everything Everywhere All at Once' for the third time haha."},
				},
			},
			{
				userA: 0, userB: 5,
				messages: []starterMessage{
					{5, "Your gym pics are super impressive! You must live there lol."},
					{0, "Haha thanks! I do spend a lot of time there. Gotta burn off all the pizza I eat."},
				},
			},
		}

		for _, ms := range matchSeeds {
			for _, pair := range [][2]int64{{ms.userA, ms.userB}, {ms.userB, ms.userA}} {
				if _, err := tx.AppendSwipe(txCtx, pair[0], pair[1], enums.SwipeRight, now); err != nil {
					return fmt.Errorf("seed swipe: %w", err)
				}
			}
			m, _, err := tx.CreateMatch(txCtx, ms.userA, ms.userB, now)
			if err != nil {
				return fmt.Errorf("seed match: %w", err)
			}
			for _, msg := range ms.messages {
				if _, err := tx.AppendMessage(txCtx, m.ID, msg.senderID, msg.text, now); err != nil {
					return fmt.Errorf("seed message: %w", err)
				}
			}
		}

		type ideaSeed struct {
			creatorID   int64
			title       string
			description string
			location    string
			applicants  []int64
		}
		ideaSeeds := []ideaSeed{
			{
				creatorID:   1,
				title:       "Hike to Sunrise Point",
				description: "Let's catch the sunrise from the best viewpoint in the city. I'll bring the coffee and donuts if you bring the good vibes. It's an early start, but totally worth it!",
				location:    "Eagle Peak Trailhead",
				applicants:  []int64{2, 4},
			},
			{
				creatorID:   2,
				title:       "Competitive Baking Night",
				description: "Think you can bake? Let's have a friendly bake-off.",
				location:    "My Place (I have all the gear!)",
				applicants:  []int64{5},
			},
			{
				creatorID:   4,
				title:       "Stargazing & Picnic",
				description: "Looking for someone to join me for a chill night out of the city.",
				location:    "Lakeview Observatory Park",
				applicants:  []int64{1, 3},
			},
		}

		for _, is := range ideaSeeds {
			idea, err := tx.CreateDateIdea(txCtx, is.creatorID, is.title, is.description, is.location, now)
			if err != nil {
				return fmt.Errorf("seed date idea: %w", err)
			}
			for _, applicant := range is.applicants {
				if _, _, err := tx.AddApplicant(txCtx, idea.ID, applicant); err != nil {
					return fmt.Errorf("seed applicant: %w", err)
				}
			}
		}

		return nil
	})
}
