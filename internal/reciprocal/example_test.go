package reciprocal

import "fmt"

func ExampleSequentialSum() {
	fmt.Println(SequentialSum([]float64{1, 2, 4, 5}))
	// Output: 1.95
}

func ExampleTwoWaySum() {
	sum, err := TwoWaySum([]float64{1, 2, 4, 5})
	fmt.Println(sum, err)

	_, err = TwoWaySum([]float64{1, 2, 4})
	fmt.Println(err)
	// Output:
	// 1.95 <nil>
	// validation error for "input": length 3 is odd, the two-way split needs an even length
}

func ExamplePartition() {
	fmt.Println(Partition(4, 10))
	fmt.Println(Partition(5, 3))
	// Output:
	// [[0, 3) [3, 6) [6, 9) [9, 10)]
	// [[0, 1) [1, 2) [2, 3) [3, 3) [3, 3)]
}

func ExampleNewDefaultFactory() {
	factory := NewDefaultFactory(Options{Tasks: 4, Workers: 2})
	fmt.Println(factory.List())

	s, err := factory.Get(NameManyTask)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	sum, _ := s.Sum([]float64{1, 2, 4, 5})
	fmt.Println(s.Description(), sum)
	// Output:
	// [manytask recursive sequential twoway]
	// Many-task fork/join (4 tasks, 2 workers) 1.95
}
