package main

import "strings"

func splitList(in string) []string {
	out := make([]string, 0)
	for _, v := range strings.Split(in, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}

	return out
}
