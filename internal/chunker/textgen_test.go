package chunker

import "strings"

// testWords is a bank of distinct words used to generate well-formed prose
// with high lexical diversity. Any run of ten consecutive generated
// sentences uses each word at most once.
var testWords = []string{
	"mountain", "river", "forest", "meadow", "valley", "stream", "harbor", "island", "prairie",
	"canyon", "glacier", "desert", "tundra", "lagoon", "estuary", "plateau", "volcano", "ridge",
	"summit", "boulder", "pebble", "thicket", "orchard", "garden", "pasture", "hillside", "rapids",
	"cascade", "foothill", "marsh", "wetland", "savanna", "steppe", "fjord", "delta", "basin",
	"channel", "seabird", "otter", "beaver", "falcon", "heron", "osprey", "marten", "badger",
	"weasel", "lynx", "cougar", "bison", "moose", "caribou", "salmon", "trout", "minnow",
	"sparrow", "swallow", "thrush", "warbler", "finch", "crane", "plover", "sandpiper", "curlew",
	"willow", "aspen", "birch", "maple", "spruce", "cedar", "juniper", "alder", "hazel",
	"bramble", "clover", "sedge", "rushes", "lichen", "mosses", "fern", "heather", "gorse",
	"bracken", "nettle", "thistle", "yarrow", "sorrel", "vetch", "mallow", "tansy", "burdock",
}

// makeSentence builds the i-th generated sentence: nine bank words, first
// one capitalized, terminated with a period.
func makeSentence(i int) string {
	words := make([]string, 9)
	for j := 0; j < 9; j++ {
		words[j] = testWords[(i*9+j)%len(testWords)]
	}
	words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	return strings.Join(words, " ") + "."
}

// makeText builds n generated sentences joined by single spaces.
func makeText(n int) string {
	sentences := make([]string, n)
	for i := range sentences {
		sentences[i] = makeSentence(i)
	}
	return strings.Join(sentences, " ")
}
