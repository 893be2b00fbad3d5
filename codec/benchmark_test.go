package codec

import (
	"testing"
)

func BenchmarkEncode_Sequence(b *testing.B) {
	a := sampleA()
	buf := make([]byte, typeA.MaxSize())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Encode(buf, typeA, &a); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode_Sequence(b *testing.B) {
	var a TypeA
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(&a, typeA, sampleABytes); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode_ListReuse(b *testing.B) {
	elem := sampleA()
	buf, err := Marshal(typeC, TypeC{{B: &elem}, {A: ptr[int8](1)}})
	if err != nil {
		b.Fatal(err)
	}
	out := make(TypeC, 0, 2)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(&out, typeC, buf); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMarshal_Sequence(b *testing.B) {
	a := sampleA()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Marshal(typeA, &a); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncodeValue_Sequence(b *testing.B) {
	v, _, err := DecodeValue(typeA, sampleABytes)
	if err != nil {
		b.Fatal(err)
	}
	buf := make([]byte, typeA.MaxSize())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := EncodeValue(buf, typeA, v); err != nil {
			b.Fatal(err)
		}
	}
}
