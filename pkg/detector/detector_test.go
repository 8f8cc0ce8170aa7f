package detector

import "testing"

func TestDetect(t *testing.T) {
	d := New()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "english",
			text: "Call me Ishmael. Some years ago, never mind how long precisely, having little or no money in my purse.",
			want: "en",
		},
		{
			name: "french",
			text: "Longtemps, je me suis couché de bonne heure. Parfois, à peine ma bougie éteinte, mes yeux se fermaient si vite.",
			want: "fr",
		},
		{
			name: "empty",
			text: "",
			want: "",
		},
		{
			name: "whitespace only",
			text: "  \n\t ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Detect(tt.text); got != tt.want {
				t.Errorf("Detect() = %q, want %q", got, tt.want)
			}
		})
	}
}
