package generator

// sampleTexts are the built-in excerpts used when no word list can serve.
// Static data, never mutated.
var sampleTexts = []string{
	"The quick brown fox jumps over the lazy dog. This pangram contains every letter of the alphabet at least once.",
	"In a hole in the ground there lived a hobbit. Not a nasty, dirty, wet hole filled with the ends of worms and an oozy smell.",
	"To be or not to be, that is the question. Whether 'tis nobler in the mind to suffer the slings and arrows of outrageous fortune.",
	"It was the best of times, it was the worst of times, it was the age of wisdom, it was the age of foolishness and doubt.",
	"All human beings are born free and equal in dignity and rights. They are endowed with reason and conscience.",
	"The only way to do great work is to love what you do. If you haven't found it yet, keep looking and don't settle.",
	"Two things are infinite: the universe and human stupidity; and I'm not sure about the universe and its vast mysteries.",
	"In the midst of winter, I found there was, within me, an invincible summer that could not be defeated by any force.",
}
