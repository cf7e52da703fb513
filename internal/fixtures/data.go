package fixtures

func seedPlans() []Plan {
	return []Plan{
		{
			PlanID:            1,
			PlanName:          "2024 Spring Ship Technology Training",
			PlanStatus:        PlanStatusInProgress,
			PlanStartDatetime: "2024-03-01 09:00:00",
			PlanEndDatetime:   "2024-06-30 18:00:00",
			CreatorID:         1,
		},
		{
			PlanID:            2,
			PlanName:          "2024 Safety Management Training Plan",
			PlanStatus:        PlanStatusPlanning,
			PlanStartDatetime: "2024-07-01 09:00:00",
			PlanEndDatetime:   "2024-09-30 18:00:00",
			CreatorID:         1,
		},
	}
}

func seedCourses() []Course {
	return []Course{
		{
			CourseID:      1,
			CourseName:    "Ship Structure Fundamentals",
			CourseDesc:    "The basic structure and components of a ship",
			CourseRequire: "No prerequisites",
			CourseClass:   "Ship Structure",
			TeacherID:     2,
		},
		{
			CourseID:      2,
			CourseName:    "Ship Power Systems",
			CourseDesc:    "Principles and maintenance of ship power systems",
			CourseRequire: "Mechanical background required",
			CourseClass:   "Power Systems",
			TeacherID:     2,
		},
		{
			CourseID:      3,
			CourseName:    "Maritime Safety Management",
			CourseDesc:    "Maritime safety regulations and emergency response",
			CourseRequire: "Basic navigation knowledge required",
			CourseClass:   "Safety Management",
			TeacherID:     3,
		},
		{
			CourseID:      4,
			CourseName:    "Ship Electrical Systems",
			CourseDesc:    "Principles, maintenance and troubleshooting of ship electrical systems",
			CourseRequire: "Electrical background required",
			CourseClass:   "Electrical Systems",
			TeacherID:     2,
		},
	}
}

func seedCourseItems() []CourseItem {
	return []CourseItem{
		{ItemID: 1, PlanID: 1, CourseID: 1, ClassDate: "2024-03-15", ClassBeginTime: "09:00:00", ClassEndTime: "11:00:00", Location: "Training Center A201"},
		{ItemID: 2, PlanID: 1, CourseID: 2, ClassDate: "2024-03-18", ClassBeginTime: "14:00:00", ClassEndTime: "16:00:00", Location: "Training Center A202"},
		{ItemID: 3, PlanID: 1, CourseID: 3, ClassDate: "2024-12-20", ClassBeginTime: "09:00:00", ClassEndTime: "11:00:00", Location: "Training Center B101"},
		{ItemID: 4, PlanID: 1, CourseID: 4, ClassDate: "2024-12-20", ClassBeginTime: "14:00:00", ClassEndTime: "17:00:00", Location: "Training Center A203"},
		{ItemID: 5, PlanID: 1, CourseID: 1, ClassDate: "2024-12-23", ClassBeginTime: "10:00:00", ClassEndTime: "12:00:00", Location: "Training Center A201"},
	}
}

func seedPersons() []Person {
	return []Person{
		{PersonID: 1, Name: "Director Zhang", Role: RolePlanner, RoleDisplay: "Course Planner"},
		{PersonID: 2, Name: "Teacher Li", Role: RoleTeacher, RoleDisplay: "Lecturer"},
		{PersonID: 3, Name: "Teacher Wang", Role: RoleTeacher, RoleDisplay: "Lecturer"},
		{PersonID: 4, Name: "Liu (Employee)", Role: RoleEmployee, RoleDisplay: "Employee"},
		{PersonID: 5, Name: "Chen (Employee)", Role: RoleEmployee, RoleDisplay: "Employee"},
	}
}

func seedAccounts() []Account {
	return []Account{
		{AccountID: 1, PersonID: 1, LoginName: "planner", Password: "123456"},
		{AccountID: 2, PersonID: 2, LoginName: "teacher", Password: "123456"},
		{AccountID: 3, PersonID: 4, LoginName: "employee", Password: "123456"},
	}
}

func seedEvaluations() []Evaluation {
	return []Evaluation{
		{
			PersonID:       4,
			ItemID:         1,
			SelfScore:      85.5,
			SelfComment:    "Very practical; I have the basics of ship structure down",
			TeacherScore:   88.0,
			TeacherComment: "Diligent and active in class",
			ScoreRatio:     0.7,
		},
		{
			PersonID:       4,
			ItemID:         2,
			SelfScore:      78.0,
			SelfComment:    "Power systems are complex, I need more study",
			TeacherScore:   82.0,
			TeacherComment: "Good understanding, needs more hands-on practice",
			ScoreRatio:     0.7,
		},
		{
			PersonID:       5,
			ItemID:         1,
			SelfScore:      90.0,
			SelfComment:    "I now have a complete picture of ship structure",
			TeacherScore:   92.0,
			TeacherComment: "Excellent trainee with solid command",
			ScoreRatio:     0.7,
		},
	}
}
