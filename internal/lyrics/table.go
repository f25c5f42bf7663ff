package lyrics

// builtin is the demo table shipped with the player. It lines up with the
// three-second cadence of the bundled sample track.
var builtin = []Entry{
	{Time: 0, Text: "Welcome to the music player"},
	{Time: 3, Text: "This is a demo song"},
	{Time: 6, Text: "The lyrics follow the music"},
	{Time: 9, Text: "When the music reaches here"},
	{Time: 12, Text: "The line lights up in sync"},
	{Time: 15, Text: "You can click any line"},
	{Time: 18, Text: "The music jumps to that spot"},
	{Time: 21, Text: "So you can find your way around"},
	{Time: 24, Text: "And reach the part you love"},
	{Time: 27, Text: "Enjoy the good times in the music"},
	{Time: 30, Text: "Every line has a precise moment"},
	{Time: 33, Text: "Keeping the lyrics perfectly in step"},
	{Time: 36, Text: "Just like singing karaoke"},
	{Time: 39, Text: "That is live lyric sync"},
	{Time: 42, Text: "Thanks for listening"},
}

// Builtin returns the demo table as a Set.
func Builtin() *Set {
	return &Set{entries: append([]Entry(nil), builtin...)}
}
