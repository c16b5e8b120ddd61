package deflate

import "testing"

func TestBuildCodeLengthRLERunsOfZeros(t *testing.T) {
	lens := make([]int, 20)
	lens[0] = 4
	// lens[1..19] stay zero: a run of 19, which the greedy encoder emits
	// as a single 11-138 run (18).
	items, freq := buildCodeLengthRLE(lens)
	if items[0].symbol != 4 {
		t.Fatalf("first item = %+v, want literal 4", items[0])
	}
	var total int
	for _, it := range items[1:] {
		switch it.symbol {
		case 18:
			total += int(it.extraValue) + 11
		case 17:
			total += int(it.extraValue) + 3
		case 0:
			total++
		default:
			t.Fatalf("unexpected symbol %d in zero run", it.symbol)
		}
	}
	if total != 19 {
		t.Fatalf("zero run length = %d, want 19", total)
	}
	if freq[4] != 1 {
		t.Fatalf("freq[4] = %d, want 1", freq[4])
	}
}

func TestBuildCodeLengthRLERepeatPrevious(t *testing.T) {
	lens := []int{5, 5, 5, 5, 5}
	items, _ := buildCodeLengthRLE(lens)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2 (literal + repeat)", len(items))
	}
	if items[0].symbol != 5 {
		t.Fatalf("first item = %+v, want literal 5", items[0])
	}
	if items[1].symbol != 16 || items[1].extraValue != 1 {
		t.Fatalf("second item = %+v, want symbol 16 extraValue 1 (4 repeats)", items[1])
	}
}

func TestBuildCodeLengthRLEShortRunsStayLiteral(t *testing.T) {
	lens := []int{3, 3}
	items, freq := buildCodeLengthRLE(lens)
	if len(items) != 2 || items[0].symbol != 3 || items[1].symbol != 3 {
		t.Fatalf("got %+v, want two literal 3s (run too short for symbol 16)", items)
	}
	if freq[3] != 2 {
		t.Fatalf("freq[3] = %d, want 2", freq[3])
	}
}

func TestLastNonZeroIndexRespectsFloor(t *testing.T) {
	lens := []int{0, 0, 0}
	if got := lastNonZeroIndex(lens, 1); got != 1 {
		t.Fatalf("lastNonZeroIndex = %d, want floor 1", got)
	}
	lens2 := []int{1, 0, 2, 0}
	if got := lastNonZeroIndex(lens2, 0); got != 2 {
		t.Fatalf("lastNonZeroIndex = %d, want 2", got)
	}
}
