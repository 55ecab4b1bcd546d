package models

import "slices"

// Sticker is a decoration a note can reference by ID.
type Sticker struct {
	ID       string
	Emoji    string
	Name     string
	Category string
}

// Sticker categories in display order.
var StickerCategories = []string{"emotions", "nature", "activities", "food", "animals", "objects"}

var stickers = []Sticker{
	{ID: "happy", Emoji: "😊", Name: "Happy", Category: "emotions"},
	{ID: "love", Emoji: "🥰", Name: "Love", Category: "emotions"},
	{ID: "excited", Emoji: "🤩", Name: "Excited", Category: "emotions"},
	{ID: "peaceful", Emoji: "😌", Name: "Peaceful", Category: "emotions"},
	{ID: "grateful", Emoji: "🙏", Name: "Grateful", Category: "emotions"},
	{ID: "proud", Emoji: "😎", Name: "Proud", Category: "emotions"},
	{ID: "thinking", Emoji: "🤔", Name: "Thinking", Category: "emotions"},
	{ID: "sleepy", Emoji: "😴", Name: "Sleepy", Category: "emotions"},
	{ID: "sun", Emoji: "☀️", Name: "Sunny", Category: "nature"},
	{ID: "rainbow", Emoji: "🌈", Name: "Rainbow", Category: "nature"},
	{ID: "flower", Emoji: "🌸", Name: "Flower", Category: "nature"},
	{ID: "tree", Emoji: "🌳", Name: "Tree", Category: "nature"},
	{ID: "star", Emoji: "⭐", Name: "Star", Category: "nature"},
	{ID: "moon", Emoji: "🌙", Name: "Moon", Category: "nature"},
	{ID: "cloud", Emoji: "☁️", Name: "Cloud", Category: "nature"},
	{ID: "leaf", Emoji: "🍃", Name: "Leaf", Category: "nature"},
	{ID: "meditation", Emoji: "🧘", Name: "Meditation", Category: "activities"},
	{ID: "exercise", Emoji: "🏃", Name: "Exercise", Category: "activities"},
	{ID: "reading", Emoji: "📚", Name: "Reading", Category: "activities"},
	{ID: "music", Emoji: "🎵", Name: "Music", Category: "activities"},
	{ID: "art", Emoji: "🎨", Name: "Art", Category: "activities"},
	{ID: "writing", Emoji: "✍️", Name: "Writing", Category: "activities"},
	{ID: "travel", Emoji: "✈️", Name: "Travel", Category: "activities"},
	{ID: "celebration", Emoji: "🎉", Name: "Celebration", Category: "activities"},
	{ID: "coffee", Emoji: "☕", Name: "Coffee", Category: "food"},
	{ID: "tea", Emoji: "🍵", Name: "Tea", Category: "food"},
	{ID: "cake", Emoji: "🍰", Name: "Cake", Category: "food"},
	{ID: "pizza", Emoji: "🍕", Name: "Pizza", Category: "food"},
	{ID: "apple", Emoji: "🍎", Name: "Apple", Category: "food"},
	{ID: "avocado", Emoji: "🥑", Name: "Avocado", Category: "food"},
	{ID: "ice-cream", Emoji: "🍦", Name: "Ice Cream", Category: "food"},
	{ID: "donut", Emoji: "🍩", Name: "Donut", Category: "food"},
	{ID: "cat", Emoji: "🐱", Name: "Cat", Category: "animals"},
	{ID: "dog", Emoji: "🐶", Name: "Dog", Category: "animals"},
	{ID: "butterfly", Emoji: "🦋", Name: "Butterfly", Category: "animals"},
	{ID: "bird", Emoji: "🐦", Name: "Bird", Category: "animals"},
	{ID: "bear", Emoji: "🐻", Name: "Bear", Category: "animals"},
	{ID: "panda", Emoji: "🐼", Name: "Panda", Category: "animals"},
	{ID: "unicorn", Emoji: "🦄", Name: "Unicorn", Category: "animals"},
	{ID: "turtle", Emoji: "🐢", Name: "Turtle", Category: "animals"},
	{ID: "heart", Emoji: "💖", Name: "Heart", Category: "objects"},
	{ID: "sparkles", Emoji: "✨", Name: "Sparkles", Category: "objects"},
	{ID: "gift", Emoji: "🎁", Name: "Gift", Category: "objects"},
	{ID: "balloon", Emoji: "🎈", Name: "Balloon", Category: "objects"},
	{ID: "crown", Emoji: "👑", Name: "Crown", Category: "objects"},
	{ID: "gem", Emoji: "💎", Name: "Gem", Category: "objects"},
	{ID: "key", Emoji: "🗝️", Name: "Key", Category: "objects"},
	{ID: "lightbulb", Emoji: "💡", Name: "Idea", Category: "objects"},
}

// Stickers returns the sticker catalog.
func Stickers() []Sticker {
	return slices.Clone(stickers)
}

// StickerByID looks up a sticker in the catalog.
func StickerByID(id string) (Sticker, bool) {
	i := slices.IndexFunc(stickers, func(s Sticker) bool { return s.ID == id })
	if i < 0 {
		return Sticker{}, false
	}
	return stickers[i], true
}

// StickersIn returns the catalog entries for one category.
func StickersIn(category string) []Sticker {
	var out []Sticker
	for _, s := range stickers {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}
